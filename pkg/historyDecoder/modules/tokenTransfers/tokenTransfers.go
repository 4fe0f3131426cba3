// Package tokenTransfers decodes plain ERC-20 Transfer logs into generically
// classified spend/receive events. Protocol modules later reclassify these in
// place when a protocol-specific log shows the transfer was part of a stake,
// claim or migration, so the same movement is never counted twice.
package tokenTransfers

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ledgerscope/txdecoder/internal/types/numbers"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"github.com/ledgerscope/txdecoder/pkg/historyDecoder"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const ModuleName = "TokenTransfersModule"

// TransferSignature is the topic hash of Transfer(address,address,uint256),
// shared by ERC-20 and ERC-721.
var TransferSignature = common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")

type TokenTransfersModule struct {
	base   *historyDecoder.BaseDecoderTools
	logger *zap.Logger
}

func NewTokenTransfersModule(
	base *historyDecoder.BaseDecoderTools,
	logger *zap.Logger,
) *TokenTransfersModule {
	return &TokenTransfersModule{
		base:   base,
		logger: logger,
	}
}

func (m *TokenTransfersModule) Name() string {
	return ModuleName
}

// AddressesToDecoders is empty: transfer decoding applies to any token
// contract, not a claimed address set.
func (m *TokenTransfersModule) AddressesToDecoders() map[common.Address][]historyDecoder.DecodeFunction {
	return map[common.Address][]historyDecoder.DecodeFunction{}
}

func (m *TokenTransfersModule) Counterparties() []string {
	return []string{}
}

func (m *TokenTransfersModule) DecodingRules() []historyDecoder.DecodeFunction {
	return []historyDecoder.DecodeFunction{
		m.decodeTransfer,
	}
}

func (m *TokenTransfersModule) decodeTransfer(
	lg *ethereum.EventLog,
	tx *ethereum.Transaction,
	eventsSoFar *historyDecoder.EventsArena,
	allLogs []*ethereum.EventLog,
	actionItems []*historyDecoder.ActionItem,
) (*historyEvents.HistoryEvent, []*historyDecoder.ActionItem, error) {
	// ERC-20 transfers carry from/to as topics; ERC-721 adds the token id as
	// a fourth topic and is not an accounting amount.
	if lg.Signature() != TransferSignature || len(lg.Topics) != 3 {
		return nil, nil, nil
	}

	token, ok := m.base.ResolveToken(lg.Address)
	if !ok {
		m.logger.Sugar().Debugw("Transfer of unknown token skipped",
			zap.String("tokenAddress", lg.Address.String()),
			zap.Uint64("logIndex", lg.LogIndex),
		)
		return nil, nil, nil
	}

	from := common.BytesToAddress(lg.Topics[1].Bytes()[12:])
	to := common.BytesToAddress(lg.Topics[2].Bytes()[12:])

	if len(lg.Data) < 32 {
		return nil, nil, errors.Wrapf(historyDecoder.ErrMalformedLog,
			"transfer log %d has %d data bytes", lg.LogIndex, len(lg.Data))
	}
	raw := new(common.Hash)
	copy(raw[:], lg.Data[:32])
	amount, err := numbers.NormalizeAmount(raw.Big(), token.Decimals)
	if err != nil {
		return nil, nil, err
	}

	event := &historyEvents.HistoryEvent{
		EventIdentifier: tx.Hash.String(),
		SequenceIndex:   m.base.GetSequenceIndex(lg),
		Timestamp:       tx.TimestampMs(),
		Location:        historyEvents.LocationFromChainId(tx.ChainId),
		Asset:           token,
		Balance:         historyEvents.NewBalance(amount),
		EventSubType:    historyEvents.EventSubTypeNone,
	}

	fromTracked := m.base.IsTrackedAddress(from)
	toTracked := m.base.IsTrackedAddress(to)
	switch {
	case fromTracked && toTracked:
		event.EventType = historyEvents.EventTypeTransfer
		event.LocationLabel = from.String()
		event.Notes = fmt.Sprintf("Transfer %s %s from %s to %s", amount.String(), token.Symbol, from.String(), to.String())
	case fromTracked:
		event.EventType = historyEvents.EventTypeSpend
		event.LocationLabel = from.String()
		event.Notes = fmt.Sprintf("Send %s %s to %s", amount.String(), token.Symbol, to.String())
	case toTracked:
		event.EventType = historyEvents.EventTypeReceive
		event.LocationLabel = to.String()
		event.Notes = fmt.Sprintf("Receive %s %s from %s", amount.String(), token.Symbol, from.String())
	default:
		// Neither side belongs to the user; nothing to account for.
		return nil, nil, nil
	}

	return event, nil, nil
}
