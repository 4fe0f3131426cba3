// Package tests holds shared helpers for package test suites.
package tests

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ledgerscope/txdecoder/internal/logger"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"go.uber.org/zap"
)

func GetLogger() *zap.Logger {
	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: true})
	return l
}

// NewEventLog assembles a log from hex-encoded topics and data, matching the
// receipt JSON the decoder consumes in production.
func NewEventLog(address string, logIndex uint64, data string, topics ...string) *ethereum.EventLog {
	topicHashes := make([]common.Hash, 0, len(topics))
	for _, topic := range topics {
		topicHashes = append(topicHashes, common.HexToHash(topic))
	}
	return &ethereum.EventLog{
		Address:  common.HexToAddress(address),
		Topics:   topicHashes,
		Data:     hexutil.MustDecode(data),
		LogIndex: logIndex,
	}
}
