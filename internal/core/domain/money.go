package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places kept by Money.
const moneyScale = 6

// ErrMoneyOutOfRange is returned for amounts that do not fit in Money.
var ErrMoneyOutOfRange = errors.New("amount out of range")

var (
	maxMicros = decimal.NewFromInt(math.MaxInt64)
	minMicros = decimal.NewFromInt(math.MinInt64)
)

// Money is a monetary amount in micro-units (1e-6) of the catalog currency.
// Integer storage lets the budget ledger update it with atomic operations.
type Money int64

// MoneyFromDecimal converts d to Money, rounding half away from zero at the
// sixth decimal place. Amounts beyond the int64 range of micro-units are
// refused with ErrMoneyOutOfRange.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	micros := d.Shift(moneyScale).Round(0)
	if micros.GreaterThan(maxMicros) || micros.LessThan(minMicros) {
		return 0, fmt.Errorf("%w: %s", ErrMoneyOutOfRange, d)
	}
	return Money(micros.IntPart()), nil
}

// MustMoney parses s as a decimal amount. It panics on malformed input and is
// meant for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromDecimal(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns m as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -moneyScale)
}

// Float64 returns the nearest float64 to m, for wire formats that carry
// prices as JSON numbers.
func (m Money) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

func (m Money) String() string {
	return m.Decimal().String()
}
