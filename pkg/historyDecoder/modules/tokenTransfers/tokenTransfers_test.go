package tokenTransfers

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ledgerscope/txdecoder/internal/tests"
	"github.com/ledgerscope/txdecoder/pkg/assets"
	"github.com/ledgerscope/txdecoder/pkg/ethereum"
	"github.com/ledgerscope/txdecoder/pkg/historyDecoder"
	"github.com/ledgerscope/txdecoder/pkg/historyEvents"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

const (
	transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	tokenAddress  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	userAddress   = "0x00000000000000000000000000000000000000aa"
	otherAddress  = "0x00000000000000000000000000000000000000bb"

	userTopic  = "0x00000000000000000000000000000000000000000000000000000000000000aa"
	otherTopic = "0x00000000000000000000000000000000000000000000000000000000000000bb"
	// 5 DAI
	fiveTokens = "0x0000000000000000000000000000000000000000000000004563918244f40000"
)

var testToken = &assets.Token{
	Identifier: "DAI",
	Symbol:     "DAI",
	Address:    common.HexToAddress(tokenAddress),
	Decimals:   18,
}

func newModule(tracked ...common.Address) *TokenTransfersModule {
	l := tests.GetLogger()
	store := assets.NewStaticTokenStore(assets.NativeEth, testToken)
	base := historyDecoder.NewBaseDecoderTools(l, store, historyDecoder.NewStaticAccountScanner(tracked))
	return NewTokenTransfersModule(base, l)
}

func testTx() *ethereum.Transaction {
	return &ethereum.Transaction{
		Hash:      common.HexToHash("0x3333333333333333333333333333333333333333333333333333333333333333"),
		ChainId:   1,
		Timestamp: 1700000000,
		GasPrice:  (*hexutil.Big)(big.NewInt(1)),
	}
}

func decode(t *testing.T, m *TokenTransfersModule, lg *ethereum.EventLog) (*historyEvents.HistoryEvent, error) {
	rules := m.DecodingRules()
	assert.Equal(t, 1, len(rules))
	event, items, err := rules[0](lg, testTx(), historyDecoder.NewEventsArena(0), nil, nil)
	assert.Empty(t, items)
	return event, err
}

func Test_DecodeTransfer_Directions(t *testing.T) {
	user := common.HexToAddress(userAddress)
	other := common.HexToAddress(otherAddress)

	t.Run("send", func(t *testing.T) {
		m := newModule(user)
		event, err := decode(t, m, tests.NewEventLog(tokenAddress, 7, fiveTokens,
			transferTopic, userTopic, otherTopic))
		assert.Nil(t, err)
		assert.Equal(t, historyEvents.EventTypeSpend, event.EventType)
		assert.Equal(t, historyEvents.EventSubTypeNone, event.EventSubType)
		assert.Equal(t, user.String(), event.LocationLabel)
		assert.Equal(t, "5", event.Balance.Amount.String())
		assert.Equal(t, uint64(8), event.SequenceIndex)
		assert.Equal(t, "Send 5 DAI to "+other.String(), event.Notes)
	})

	t.Run("receive", func(t *testing.T) {
		m := newModule(user)
		event, err := decode(t, m, tests.NewEventLog(tokenAddress, 7, fiveTokens,
			transferTopic, otherTopic, userTopic))
		assert.Nil(t, err)
		assert.Equal(t, historyEvents.EventTypeReceive, event.EventType)
		assert.Equal(t, user.String(), event.LocationLabel)
		assert.Equal(t, "Receive 5 DAI from "+other.String(), event.Notes)
	})

	t.Run("both sides tracked", func(t *testing.T) {
		m := newModule(user, other)
		event, err := decode(t, m, tests.NewEventLog(tokenAddress, 7, fiveTokens,
			transferTopic, userTopic, otherTopic))
		assert.Nil(t, err)
		assert.Equal(t, historyEvents.EventTypeTransfer, event.EventType)
		assert.Equal(t, user.String(), event.LocationLabel)
		assert.Equal(t, "Transfer 5 DAI from "+user.String()+" to "+other.String(), event.Notes)
	})

	t.Run("neither side tracked", func(t *testing.T) {
		m := newModule()
		event, err := decode(t, m, tests.NewEventLog(tokenAddress, 7, fiveTokens,
			transferTopic, userTopic, otherTopic))
		assert.Nil(t, err)
		assert.Nil(t, event)
	})
}

func Test_DecodeTransfer_Gates(t *testing.T) {
	user := common.HexToAddress(userAddress)

	t.Run("wrong signature", func(t *testing.T) {
		m := newModule(user)
		event, err := decode(t, m, tests.NewEventLog(tokenAddress, 7, fiveTokens,
			"0x1111111111111111111111111111111111111111111111111111111111111111",
			userTopic, otherTopic))
		assert.Nil(t, err)
		assert.Nil(t, event)
	})

	t.Run("erc721 transfer excluded", func(t *testing.T) {
		m := newModule(user)
		event, err := decode(t, m, tests.NewEventLog(tokenAddress, 7, "0x",
			transferTopic, userTopic, otherTopic,
			"0x0000000000000000000000000000000000000000000000000000000000000001"))
		assert.Nil(t, err)
		assert.Nil(t, event)
	})

	t.Run("unknown token skipped", func(t *testing.T) {
		m := newModule(user)
		event, err := decode(t, m, tests.NewEventLog(otherAddress, 7, fiveTokens,
			transferTopic, userTopic, otherTopic))
		assert.Nil(t, err)
		assert.Nil(t, event)
	})

	t.Run("short data is malformed", func(t *testing.T) {
		m := newModule(user)
		event, err := decode(t, m, tests.NewEventLog(tokenAddress, 7, "0x01",
			transferTopic, userTopic, otherTopic))
		assert.Nil(t, event)
		assert.True(t, errors.Is(err, historyDecoder.ErrMalformedLog))
	})
}
