package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ledgerscope/txdecoder/pkg/assets"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_JsonlEventSink_AppendsOneEventPerLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "events.jsonl")
	sink := NewJsonlEventSink(path)

	batch := []*historyEvents.HistoryEvent{
		{
			EventIdentifier: "0xabc",
			SequenceIndex:   0,
			Location:        "ethereum",
			Asset:           assets.NativeEth,
			Balance:         historyEvents.NewBalance(decimal.RequireFromString("0.1")),
			EventType:       historyEvents.EventTypeSpend,
			EventSubType:    historyEvents.EventSubTypeFee,
		},
		{
			EventIdentifier: "0xabc",
			SequenceIndex:   3,
			Location:        "ethereum",
			Asset:           assets.NativeEth,
			EventType:       historyEvents.EventTypeReceive,
			EventSubType:    historyEvents.EventSubTypeNone,
		},
	}
	assert.Nil(t, sink.PutEventBatch(batch))
	// A second batch appends rather than truncates.
	assert.Nil(t, sink.PutEventBatch(batch[1:]))

	file, err := os.Open(path)
	assert.Nil(t, err)
	defer file.Close()

	var lines []*historyEvents.HistoryEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		event := &historyEvents.HistoryEvent{}
		assert.Nil(t, json.Unmarshal(scanner.Bytes(), event))
		lines = append(lines, event)
	}
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "0.1", lines[0].Balance.Amount.String())
	assert.Equal(t, uint64(3), lines[1].SequenceIndex)
	assert.Equal(t, uint64(3), lines[2].SequenceIndex)
}

func Test_JsonlEventSink_EmptyBatchWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	sink := NewJsonlEventSink(path)

	assert.Nil(t, sink.PutEventBatch(nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
