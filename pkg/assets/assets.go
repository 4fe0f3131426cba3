// Package assets provides token identities and decimal metadata. Resolution
// of arbitrary on-chain tokens is the job of an external asset registry; the
// decoder only needs a read-only store mapping contract addresses to the
// tokens it has been configured with.
package assets

import (
	"github.com/ethereum/go-ethereum/common"
)

// Token identifies one asset and its decimal precision.
type Token struct {
	// Identifier is the stable asset identifier, shared by every event that
	// references this token
	Identifier string `json:"identifier"`
	Symbol     string `json:"symbol"`
	// Address is the token contract, or the zero address for the chain-native
	// asset
	Address  common.Address `json:"address"`
	Decimals int            `json:"decimals"`
	Native   bool           `json:"native,omitempty"`
}

// Equal compares tokens by identifier.
func (t *Token) Equal(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Identifier == other.Identifier
}

// NativeEth is the gas asset of Ethereum mainnet and its testnets.
var NativeEth = &Token{
	Identifier: "ETH",
	Symbol:     "ETH",
	Decimals:   18,
	Native:     true,
}

// TokenStore resolves a token contract address to its metadata.
type TokenStore interface {
	// ResolveToken returns the token deployed at the address, or false when
	// the address is not a known token
	ResolveToken(address common.Address) (*Token, bool)
	// NativeToken returns the chain's gas asset
	NativeToken() *Token
}

// StaticTokenStore is an immutable in-memory TokenStore.
type StaticTokenStore struct {
	native    *Token
	byAddress map[common.Address]*Token
}

func NewStaticTokenStore(native *Token, tokens ...*Token) *StaticTokenStore {
	byAddress := make(map[common.Address]*Token, len(tokens))
	for _, token := range tokens {
		byAddress[token.Address] = token
	}
	return &StaticTokenStore{
		native:    native,
		byAddress: byAddress,
	}
}

func (s *StaticTokenStore) ResolveToken(address common.Address) (*Token, bool) {
	token, ok := s.byAddress[address]
	return token, ok
}

func (s *StaticTokenStore) NativeToken() *Token {
	return s.native
}
