package utils

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func Test_AreAddressesEqual(t *testing.T) {
	assert.True(t, AreAddressesEqual(
		"0xDf22269fD88318FB13956b6329BB5959AA06181d",
		"0xdf22269fd88318fb13956b6329bb5959aa06181d",
	))
	assert.False(t, AreAddressesEqual(NullEthereumAddressHex, "0xdf22269fd88318fb13956b6329bb5959aa06181d"))
}

func Test_TopicToAddress(t *testing.T) {
	topic := common.HexToHash("0x000000000000000000000000Df22269fD88318FB13956b6329BB5959AA06181d")
	assert.Equal(t,
		common.HexToAddress("0xDf22269fD88318FB13956b6329BB5959AA06181d"),
		TopicToAddress(topic),
	)
}

func Test_DataWord(t *testing.T) {
	data := common.FromHex("0x000000000000000000000000000000000000000000000000000000000000000100000000000000000000000000000000000000000000000003105E9EE965119A")

	t.Run("Should slice words at fixed offsets", func(t *testing.T) {
		flag, err := DataWordToBig(data, 0)
		assert.Nil(t, err)
		assert.Equal(t, int64(1), flag.Int64())

		amount, err := DataWordToBig(data, 1)
		assert.Nil(t, err)
		assert.Equal(t, "220780418354712986", amount.String())
	})

	t.Run("Should reject out-of-range words", func(t *testing.T) {
		_, err := DataWord(data, 2)
		assert.NotNil(t, err)

		_, err = DataWord(data[:16], 0)
		assert.NotNil(t, err)

		_, err = DataWord(data, -1)
		assert.NotNil(t, err)
	})
}

func Test_Map(t *testing.T) {
	out := Map([]string{"a", "b", "c"}, func(s string, i uint64) string {
		return fmt.Sprintf("%s%d", s, i)
	})
	assert.Equal(t, []string{"a0", "b1", "c2"}, out)
}
