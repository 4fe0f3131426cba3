// Package historyEvents defines the typed accounting events the decoder
// produces. An event describes what economically happened within one
// transaction: a transfer, a stake, a reward claim, the gas fee.
package historyEvents

import (
	"github.com/ledgerscope/txdecoder/pkg/assets"
	"github.com/shopspring/decimal"
)

// EventType is the coarse classification of an event.
type EventType string

const (
	EventTypeSpend         EventType = "spend"
	EventTypeReceive       EventType = "receive"
	EventTypeTransfer      EventType = "transfer"
	EventTypeStaking       EventType = "staking"
	EventTypeMigrate       EventType = "migrate"
	EventTypeInformational EventType = "informational"
)

// EventSubType is the fine classification of an event.
type EventSubType string

const (
	EventSubTypeNone         EventSubType = "none"
	EventSubTypeFee          EventSubType = "fee"
	EventSubTypeReward       EventSubType = "reward"
	EventSubTypeDepositAsset EventSubType = "deposit asset"
	EventSubTypeRemoveAsset  EventSubType = "remove asset"
	EventSubTypeReceive      EventSubType = "receive"
)

// CounterpartyGas tags the network fee event.
const CounterpartyGas = "gas"

// Balance is an exact decimal amount plus its (here always zero) USD value.
// Valuation happens downstream of decoding.
type Balance struct {
	Amount   decimal.Decimal `json:"amount"`
	UsdValue decimal.Decimal `json:"usdValue"`
}

// NewBalance returns a Balance for the given amount with a zero USD value.
func NewBalance(amount decimal.Decimal) Balance {
	return Balance{Amount: amount, UsdValue: decimal.Zero}
}

// HistoryEvent is the mutable unit of decoding output. A later decoder
// invocation within the same pass may reclassify an event in place; events
// are never deleted. Once the pass finishes the ordered list becomes
// immutable.
type HistoryEvent struct {
	// EventIdentifier is the transaction hash; every event of one transaction
	// shares it
	EventIdentifier string `json:"eventIdentifier"`
	// SequenceIndex establishes the display/accounting order within one
	// transaction. Unique per transaction, not globally.
	SequenceIndex uint64 `json:"sequenceIndex"`
	// Timestamp is in milliseconds
	Timestamp uint64 `json:"timestamp"`
	// Location is the chain tag the event happened on
	Location string `json:"location"`
	// LocationLabel is the tracked address this event is attributed to, or
	// empty
	LocationLabel string        `json:"locationLabel,omitempty"`
	Asset         *assets.Token `json:"asset"`
	Balance       Balance       `json:"balance"`
	EventType     EventType     `json:"eventType"`
	EventSubType  EventSubType  `json:"eventSubType"`
	// Counterparty is the protocol tag that caused the event, or empty
	Counterparty string `json:"counterparty,omitempty"`
	Notes        string `json:"notes,omitempty"`
	// ExtraData carries the original log-derived raw quantities as exact
	// decimal strings for auditability
	ExtraData map[string]string `json:"extraData,omitempty"`
}

// LocationFromChainId maps a chain id to the location tag stamped on events.
func LocationFromChainId(chainId uint64) string {
	switch chainId {
	case 1:
		return "ethereum"
	case 17000:
		return "holesky"
	case 11155111:
		return "sepolia"
	default:
		return "blockchain"
	}
}
