package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"1.5", 1_500_000},
		{"0.0000005", 1},
		{"-0.0000005", -1},
		{"0", 0},
		{"9223372036854.775807", math.MaxInt64},
		{"-9223372036854.775808", math.MinInt64},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := MoneyFromDecimal(decimal.RequireFromString(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoneyFromDecimalOutOfRange(t *testing.T) {
	for _, in := range []string{"9300000000000", "9223372036854.775808", "-9223372036854.775809", "1e30"} {
		t.Run(in, func(t *testing.T) {
			_, err := MoneyFromDecimal(decimal.RequireFromString(in))
			assert.ErrorIs(t, err, ErrMoneyOutOfRange)
		})
	}
}

func TestMustMoneyPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { MustMoney("9300000000000") })
}
