// Package utils provides small helpers for addresses and raw log payloads.
package utils

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const evmWordSize = 32

// NullEthereumAddress is the null Ethereum address without the 0x prefix.
var NullEthereumAddress = "0000000000000000000000000000000000000000"

// NullEthereumAddressHex is the null Ethereum address with the 0x prefix.
var NullEthereumAddressHex = fmt.Sprintf("0x%s", NullEthereumAddress)

// AreAddressesEqual compares two Ethereum addresses for equality, ignoring case.
func AreAddressesEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ConvertBytesToString converts a byte array to a hexadecimal string with 0x prefix.
func ConvertBytesToString(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// TopicToAddress interprets a 32-byte topic as a left-padded address.
func TopicToAddress(topic common.Hash) common.Address {
	return common.BytesToAddress(topic.Bytes()[12:])
}

// DataWord returns the i-th 32-byte word of a log payload. Payloads shorter
// than the requested word are malformed and reported as an error rather than
// read out of range.
func DataWord(data []byte, i int) ([]byte, error) {
	start := i * evmWordSize
	end := start + evmWordSize
	if i < 0 || len(data) < end {
		return nil, fmt.Errorf("log data too short: want word %d, have %d bytes", i, len(data))
	}
	return data[start:end], nil
}

// DataWordToBig returns the i-th 32-byte word of a log payload as an unsigned
// big integer.
func DataWordToBig(data []byte, i int) (*big.Int, error) {
	word, err := DataWord(data, i)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(word), nil
}

// Map applies a mapper function to each element of the list and returns a new list
func Map[A any, B any](coll []A, mapper func(i A, index uint64) B) []B {
	out := make([]B, len(coll))
	for i, item := range coll {
		out[i] = mapper(item, uint64(i))
	}
	return out
}
