// Package historyDecoder turns one transaction plus its receipt into the
// ordered list of typed accounting events. Protocol knowledge is contributed
// by decoder modules registered in a Registry; the TransactionDecoder drives
// the log-by-log pass.
package historyDecoder

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/pkg/errors"
)

var (
	// ErrMalformedLog marks a log whose payload is shorter than the decode
	// function's fixed-width fields, or whose topics are out of range. The
	// offending log is skipped; decoding continues.
	ErrMalformedLog = errors.New("malformed log payload")
	// ErrUnknownFlagValue marks a discriminant field outside its documented
	// domain. Treated like a malformed log: skip, never guess a branch.
	ErrUnknownFlagValue = errors.New("unknown flag value in log payload")
	// ErrRegistryCollision marks two modules claiming the same counterparty
	// tag. Fatal at registration time.
	ErrRegistryCollision = errors.New("counterparty tag claimed by multiple decoder modules")
	// ErrSequenceCollision marks duplicate sequence indices after decoding.
	// Fatal for the transaction; it signals a decode-function bug.
	ErrSequenceCollision = errors.New("duplicate sequence index in decoded events")
)

// EventsArena is the per-transaction mutable list of already-decoded events.
// It is owned exclusively by one decode pass; decode functions may mutate its
// entries in place (reclassification) or append synthesized events directly
// when one log yields more than one. Lookups are linear scans: per-transaction
// log counts are small.
type EventsArena struct {
	events []*historyEvents.HistoryEvent
}

func NewEventsArena(capacity int) *EventsArena {
	return &EventsArena{events: make([]*historyEvents.HistoryEvent, 0, capacity)}
}

func (a *EventsArena) Append(events ...*historyEvents.HistoryEvent) {
	a.events = append(a.events, events...)
}

// Events returns the backing slice. Entries may be mutated in place; the
// slice itself must only grow through Append.
func (a *EventsArena) Events() []*historyEvents.HistoryEvent {
	return a.events
}

func (a *EventsArena) Len() int {
	return len(a.events)
}

// DecodeFunction is one unit of per-log decode logic. It may mutate entries
// of the arena in place (reclassification), append synthesized events, return
// one newly synthesized event, and return action items to be applied against
// later logs. It must be a pure function of these inputs plus module-static
// lookup tables; no state persists across transactions.
type DecodeFunction func(
	log *ethereum.EventLog,
	tx *ethereum.Transaction,
	eventsSoFar *EventsArena,
	allLogs []*ethereum.EventLog,
	actionItems []*ActionItem,
) (*historyEvents.HistoryEvent, []*ActionItem, error)

// DecoderModule is one unit of protocol-specific knowledge.
type DecoderModule interface {
	// AddressesToDecoders returns the contract addresses this module claims,
	// each with the ordered list of decode functions to try for its logs
	AddressesToDecoders() map[common.Address][]DecodeFunction
	// Counterparties returns the protocol tags this module may stamp onto
	// events
	Counterparties() []string
	// Name identifies the module for registry bookkeeping
	Name() string
}

// RuleDecoderModule is implemented by modules whose decode functions apply to
// every log regardless of the emitting address, such as the generic token
// transfer rules. These run only when no address-claimed function produced an
// event for the log.
type RuleDecoderModule interface {
	DecoderModule
	DecodingRules() []DecodeFunction
}

// AccountScanner tells the decoder which addresses belong to the user, for
// event attribution. The real implementation lives with the account-tracking
// collaborator.
type AccountScanner interface {
	IsTrackedAddress(address common.Address) bool
}

// StaticAccountScanner is an immutable AccountScanner over a fixed address
// set.
type StaticAccountScanner struct {
	tracked map[common.Address]struct{}
}

func NewStaticAccountScanner(addresses []common.Address) *StaticAccountScanner {
	tracked := make(map[common.Address]struct{}, len(addresses))
	for _, addr := range addresses {
		tracked[addr] = struct{}{}
	}
	return &StaticAccountScanner{tracked: tracked}
}

func (s *StaticAccountScanner) IsTrackedAddress(address common.Address) bool {
	_, ok := s.tracked[address]
	return ok
}
