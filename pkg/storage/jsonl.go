package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/pkg/errors"
)

// JsonlEventSink writes decoded events to a JSONL file, one event per line.
type JsonlEventSink struct {
	path string
	mu   sync.Mutex
}

func NewJsonlEventSink(path string) *JsonlEventSink {
	return &JsonlEventSink{path: path}
}

// PutEventBatch appends a batch of events as JSON lines.
func (s *JsonlEventSink) PutEventBatch(events []*historyEvents.HistoryEvent) error {
	if len(events) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output dir")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrap(err, "open output file")
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, event := range events {
		line, err := json.Marshal(event)
		if err != nil {
			return errors.Wrap(err, "marshal event")
		}
		if _, err := writer.Write(line); err != nil {
			return errors.Wrap(err, "write event")
		}
		if err := writer.WriteByte('\n'); err != nil {
			return errors.Wrap(err, "write newline")
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrap(err, "flush output")
	}

	return nil
}
