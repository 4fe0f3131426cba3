package historyDecoder

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ledgerscope/txdecoder/pkg/assets"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
)

// ActionType selects what an action item does when its trigger log appears.
type ActionType string

const (
	// ActionTransform rewrites the classification of the event the trigger
	// log produced
	ActionTransform ActionType = "transform"
	// ActionSkip suppresses decoding of the trigger log entirely
	ActionSkip ActionType = "skip"
)

// ActionItem is a deferred decoding instruction: "a later log with these
// properties should be interpreted differently". A decoder returns one when
// the log it needs has not been seen yet. Items are owned by a single decode
// pass; any item whose trigger never appears is discarded when the receipt
// ends, which is expected and not an error.
type ActionItem struct {
	Action ActionType

	// Trigger predicate. Nil fields match anything; set fields must all
	// match.
	Address   *common.Address
	Signature *common.Hash

	// Event selection for transforms, applied when the trigger log did not
	// itself produce an event. Nil/empty fields match anything.
	Asset            *assets.Token
	FromEventType    historyEvents.EventType
	FromEventSubType historyEvents.EventSubType

	// Transform is the continuation run against the selected event. Only
	// meaningful for ActionTransform.
	Transform func(event *historyEvents.HistoryEvent)
}

// MatchesLog reports whether the log satisfies the item's trigger predicate.
func (ai *ActionItem) MatchesLog(log *ethereum.EventLog) bool {
	if ai.Address != nil && *ai.Address != log.Address {
		return false
	}
	if ai.Signature != nil && *ai.Signature != log.Signature() {
		return false
	}
	return true
}

// MatchesEvent reports whether the event satisfies the item's selection
// criteria.
func (ai *ActionItem) MatchesEvent(event *historyEvents.HistoryEvent) bool {
	if ai.Asset != nil && !ai.Asset.Equal(event.Asset) {
		return false
	}
	if ai.FromEventType != "" && ai.FromEventType != event.EventType {
		return false
	}
	if ai.FromEventSubType != "" && ai.FromEventSubType != event.EventSubType {
		return false
	}
	return true
}
