// Package storage persists decoded events and loads the raw transaction and
// receipt inputs the decoder consumes.
package storage

import "github.com/ledgerscope/txdecoder/pkg/historyEvents"

// EventSink is a destination for decoded accounting events.
type EventSink interface {
	PutEventBatch(events []*historyEvents.HistoryEvent) error
}
