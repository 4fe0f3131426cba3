// Package numbers provides exact decimal math for token amounts.
//
// All conversions from raw on-chain integers go through shopspring/decimal so
// accounting totals never touch binary floating point.
package numbers

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidDecimals is returned when a token reports a negative decimal
// precision.
var ErrInvalidDecimals = errors.New("token decimals must not be negative")

// NormalizeAmount converts a raw unsigned integer amount into the token's
// native precision, i.e. raw / 10^decimals. The result is exact: no rounding
// happens beyond the shift itself.
func NormalizeAmount(raw *big.Int, decimals int) (decimal.Decimal, error) {
	if decimals < 0 {
		return decimal.Decimal{}, errors.Wrapf(ErrInvalidDecimals, "decimals: %d", decimals)
	}
	if raw == nil {
		return decimal.Zero, nil
	}
	// NewFromBigInt copies the exponent, not the mantissa. Copy the input so
	// callers can keep mutating their big.Int.
	return decimal.NewFromBigInt(new(big.Int).Set(raw), int32(-decimals)), nil
}

// DenormalizeAmount shifts a normalized amount back to raw units. Inverse of
// NormalizeAmount for amounts that originated from an integer.
func DenormalizeAmount(amount decimal.Decimal, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, errors.Wrapf(ErrInvalidDecimals, "decimals: %d", decimals)
	}
	return amount.Shift(int32(decimals)).BigInt(), nil
}
