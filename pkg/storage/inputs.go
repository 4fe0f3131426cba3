package storage

import (
	"encoding/json"
	"os"

	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"github.com/pkg/errors"
)

// ReadTransactionFile loads a transaction from a JSON file, in the field
// layout an execution client's RPC returns.
func ReadTransactionFile(path string) (*ethereum.Transaction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read transaction file")
	}
	tx := &ethereum.Transaction{}
	if err := json.Unmarshal(raw, tx); err != nil {
		return nil, errors.Wrap(err, "parse transaction file")
	}
	return tx, nil
}

// ReadReceiptFile loads a transaction receipt from a JSON file.
func ReadReceiptFile(path string) (*ethereum.TransactionReceipt, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read receipt file")
	}
	receipt := &ethereum.TransactionReceipt{}
	if err := json.Unmarshal(raw, receipt); err != nil {
		return nil, errors.Wrap(err, "parse receipt file")
	}
	return receipt, nil
}
