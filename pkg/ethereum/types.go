// Package ethereum holds the raw chain primitives consumed by the decoding
// engine: transactions, receipts and event logs. The node-communication layer
// that fetches them lives outside this repository; everything here is a plain
// value type that is read-only to the decoder for the lifetime of one decode
// pass.
package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EventLog is one raw log record emitted during transaction execution.
type EventLog struct {
	// Address is the contract that emitted the log
	Address common.Address `json:"address"`
	// Topics are the indexed 32-byte fields; Topics[0] is the event signature
	Topics []common.Hash `json:"topics"`
	// Data is the opaque non-indexed payload
	Data hexutil.Bytes `json:"data"`
	// LogIndex is the position of the log within the block
	LogIndex uint64 `json:"logIndex"`
	// Removed is set when the log was reverted by a chain reorganization
	Removed bool `json:"removed"`
}

// Signature returns the event signature hash, or the zero hash for a log
// without topics.
func (l *EventLog) Signature() common.Hash {
	if len(l.Topics) == 0 {
		return common.Hash{}
	}
	return l.Topics[0]
}

// TransactionReceipt is the outcome of executing one transaction. Logs are
// ordered by ascending log index; that ordering is an invariant guaranteed by
// the node, not re-established here.
type TransactionReceipt struct {
	TransactionHash common.Hash `json:"transactionHash"`
	Logs            []*EventLog `json:"logs"`
	// Status is 1 for a successful execution, 0 for a revert
	Status  uint64 `json:"status"`
	ChainId uint64 `json:"chainId"`
}

func (r *TransactionReceipt) Succeeded() bool {
	return r.Status == 1
}

// Transaction carries the fields of the originating transaction the decoder
// needs. Timestamp is the authoritative event time, in seconds.
type Transaction struct {
	Hash      common.Hash     `json:"hash"`
	ChainId   uint64          `json:"chainId"`
	Timestamp uint64          `json:"timestamp"`
	From      common.Address  `json:"from"`
	To        *common.Address `json:"to"`
	Value     *hexutil.Big    `json:"value"`
	Nonce     uint64          `json:"nonce"`
	InputData hexutil.Bytes   `json:"input"`
	Gas       uint64          `json:"gas"`
	GasPrice  *hexutil.Big    `json:"gasPrice"`
	GasUsed   uint64          `json:"gasUsed"`
}

// FeeWei returns the total gas fee paid, in wei.
func (t *Transaction) FeeWei() *big.Int {
	gasPrice := new(big.Int)
	if t.GasPrice != nil {
		gasPrice.Set(t.GasPrice.ToInt())
	}
	return gasPrice.Mul(gasPrice, new(big.Int).SetUint64(t.GasUsed))
}

// TimestampMs returns the transaction timestamp in millisecond resolution,
// the resolution all decoded events carry.
func (t *Transaction) TimestampMs() uint64 {
	return t.Timestamp * 1000
}
