package historyDecoder

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ledgerscope/txdecoder/internal/types/numbers"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/ledgerscope/txdecoder/pkg/metrics/metricsTypes"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TransactionDecoder drives the decode pass for one transaction at a time.
// It owns no per-transaction state between calls: decoding the same inputs
// twice yields identical output. Independent transactions may be decoded in
// parallel by separate calls since the registry is read-only after startup.
type TransactionDecoder struct {
	logger      *zap.Logger
	registry    *Registry
	base        *BaseDecoderTools
	metricsSink metricsTypes.IMetricsClient
}

func NewTransactionDecoder(
	logger *zap.Logger,
	registry *Registry,
	base *BaseDecoderTools,
	metricsSink metricsTypes.IMetricsClient,
) *TransactionDecoder {
	return &TransactionDecoder{
		logger:      logger,
		registry:    registry,
		base:        base,
		metricsSink: metricsSink,
	}
}

// DecodeTransaction decodes one transaction plus its receipt into the ordered
// list of accounting events. The fee event always comes first with sequence
// index 0. A malformed log is skipped with a warning; the only error returned
// is a sequence-index collision, which signals a decode-function bug and
// fails the transaction without corrupting accounting totals.
func (td *TransactionDecoder) DecodeTransaction(
	tx *ethereum.Transaction,
	receipt *ethereum.TransactionReceipt,
) ([]*historyEvents.HistoryEvent, error) {
	startedAt := time.Now()
	hasError := false
	defer func() {
		td.timing(metricsTypes.Metric_Timing_TransactionDecodeDuration, time.Since(startedAt), []metricsTypes.MetricsLabel{
			{Name: "hasError", Value: strconv.FormatBool(hasError)},
		})
	}()

	arena := NewEventsArena(len(receipt.Logs) + 1)
	arena.Append(td.feeEvent(tx))

	// A reverted transaction burns gas and nothing else.
	if !receipt.Succeeded() {
		td.logger.Sugar().Debugw("Transaction reverted, only the fee event applies",
			zap.String("transactionHash", tx.Hash.String()),
		)
		return arena.Events(), nil
	}

	pending := make([]*ActionItem, 0)

	for _, lg := range receipt.Logs {
		if lg.Removed {
			td.logger.Sugar().Warnw("Skipping removed log",
				zap.String("transactionHash", tx.Hash.String()),
				zap.Uint64("logIndex", lg.LogIndex),
			)
			continue
		}

		if skipped, remaining := consumeSkipItem(pending, lg); skipped {
			pending = remaining
			continue
		}

		produced, newItems := td.decodeLog(lg, tx, arena, receipt.Logs, pending)
		pending = append(pending, newItems...)
		pending = td.applyActionItems(pending, lg, produced, arena)
		td.incr(metricsTypes.Metric_Incr_LogDecoded, nil)
	}

	// Items still pending expired: the correlating log never appeared. That
	// is expected for conditional protocol flows, not an error.
	for range pending {
		td.incr(metricsTypes.Metric_Incr_ActionItemExpired, nil)
	}
	if len(pending) > 0 {
		td.logger.Sugar().Debugw("Discarding expired action items",
			zap.String("transactionHash", tx.Hash.String()),
			zap.Int("count", len(pending)),
		)
	}

	events := arena.Events()
	if err := verifySequenceIndexes(events); err != nil {
		hasError = true
		td.incr(metricsTypes.Metric_Incr_TransactionFailed, []metricsTypes.MetricsLabel{
			{Name: "reason", Value: "sequence_collision"},
		})
		return nil, errors.Wrapf(err, "transaction %s", tx.Hash.String())
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].SequenceIndex < events[j].SequenceIndex
	})
	td.incr(metricsTypes.Metric_Incr_TransactionDecoded, nil)
	return events, nil
}

// decodeLog runs the address-claimed decode functions for a log, falling back
// to the address-independent rules when none of them produced an event. A
// failing decode function is a malformed-log condition: it is treated as if
// it returned nothing and the pass continues. Returns the first event the log
// produced, if any.
func (td *TransactionDecoder) decodeLog(
	lg *ethereum.EventLog,
	tx *ethereum.Transaction,
	arena *EventsArena,
	allLogs []*ethereum.EventLog,
	pending []*ActionItem,
) (*historyEvents.HistoryEvent, []*ActionItem) {
	var produced *historyEvents.HistoryEvent
	newItems := make([]*ActionItem, 0)

	runFunction := func(fn DecodeFunction) {
		before := arena.Len()
		event, items, err := fn(lg, tx, arena, allLogs, pending)
		if err != nil {
			td.logger.Sugar().Warnw("Failed to decode log",
				zap.String("transactionHash", tx.Hash.String()),
				zap.String("logAddress", lg.Address.String()),
				zap.Uint64("logIndex", lg.LogIndex),
				zap.Error(err),
			)
			td.incr(metricsTypes.Metric_Incr_LogDecodeFailed, nil)
			return
		}
		newItems = append(newItems, items...)
		if event != nil {
			arena.Append(event)
		}
		if produced == nil {
			if event != nil {
				produced = event
			} else if arena.Len() > before {
				produced = arena.Events()[before]
			}
		}
	}

	for _, fn := range td.registry.Resolve(lg.Address) {
		runFunction(fn)
	}
	if produced == nil {
		for _, fn := range td.registry.DecodingRules() {
			runFunction(fn)
			if produced != nil {
				break
			}
		}
	}

	if produced != nil {
		td.incr(metricsTypes.Metric_Incr_EventProduced, []metricsTypes.MetricsLabel{
			{Name: "event_type", Value: string(produced.EventType)},
		})
	}
	return produced, newItems
}

// applyActionItems applies and removes every pending item whose trigger
// matches the log just processed. A transform targets the event the log
// produced when it matches the item's selection, otherwise the most recent
// matching event already decoded.
func (td *TransactionDecoder) applyActionItems(
	pending []*ActionItem,
	lg *ethereum.EventLog,
	produced *historyEvents.HistoryEvent,
	arena *EventsArena,
) []*ActionItem {
	remaining := pending[:0]
	for _, item := range pending {
		if !item.MatchesLog(lg) {
			remaining = append(remaining, item)
			continue
		}
		if item.Action != ActionTransform || item.Transform == nil {
			continue
		}
		target := produced
		if target == nil || !item.MatchesEvent(target) {
			target = nil
			events := arena.Events()
			for i := len(events) - 1; i >= 0; i-- {
				if item.MatchesEvent(events[i]) {
					target = events[i]
					break
				}
			}
		}
		if target == nil {
			// Trigger matched but no event to rewrite; drop the item.
			td.logger.Sugar().Debugw("Action item trigger matched without a target event",
				zap.Uint64("logIndex", lg.LogIndex),
			)
			continue
		}
		item.Transform(target)
	}
	return remaining
}

func (td *TransactionDecoder) feeEvent(tx *ethereum.Transaction) *historyEvents.HistoryEvent {
	native := td.base.NativeToken()
	amount, err := numbers.NormalizeAmount(tx.FeeWei(), native.Decimals)
	if err != nil {
		// The native asset's decimals are static configuration; a failure
		// here means the store is misconfigured.
		td.logger.Sugar().Errorw("Failed to normalize transaction fee",
			zap.String("transactionHash", tx.Hash.String()),
			zap.Error(err),
		)
	}
	return &historyEvents.HistoryEvent{
		EventIdentifier: tx.Hash.String(),
		SequenceIndex:   0,
		Timestamp:       tx.TimestampMs(),
		Location:        historyEvents.LocationFromChainId(tx.ChainId),
		LocationLabel:   tx.From.String(),
		Asset:           native,
		Balance:         historyEvents.NewBalance(amount),
		EventType:       historyEvents.EventTypeSpend,
		EventSubType:    historyEvents.EventSubTypeFee,
		Counterparty:    historyEvents.CounterpartyGas,
		Notes:           fmt.Sprintf("Burned %s %s for gas", amount.String(), native.Symbol),
	}
}

// consumeSkipItem removes and reports the first pending skip item matching
// the log.
func consumeSkipItem(pending []*ActionItem, lg *ethereum.EventLog) (bool, []*ActionItem) {
	for i, item := range pending {
		if item.Action == ActionSkip && item.MatchesLog(lg) {
			return true, append(pending[:i], pending[i+1:]...)
		}
	}
	return false, pending
}

func verifySequenceIndexes(events []*historyEvents.HistoryEvent) error {
	seen := make(map[uint64]struct{}, len(events))
	for _, event := range events {
		if _, ok := seen[event.SequenceIndex]; ok {
			return errors.Wrapf(ErrSequenceCollision, "sequence index %d", event.SequenceIndex)
		}
		seen[event.SequenceIndex] = struct{}{}
	}
	return nil
}

func (td *TransactionDecoder) incr(name string, labels []metricsTypes.MetricsLabel) {
	if td.metricsSink == nil {
		return
	}
	_ = td.metricsSink.Incr(name, labels, 1)
}

func (td *TransactionDecoder) timing(name string, value time.Duration, labels []metricsTypes.MetricsLabel) {
	if td.metricsSink == nil {
		return
	}
	_ = td.metricsSink.Timing(name, value, labels)
}
