package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every stored amount carries
const MoneyScale int32 = 2

// Money is an immutable fixed-point currency amount with two fractional digits.
// The zero value is 0.00.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal. It fails if the value has more than two fractional digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, fmt.Errorf("amount %s has more than %d decimal places", amount.String(), MoneyScale)
	}
	return Money{amount: amount.Round(MoneyScale)}, nil
}

// NewMoneyFromString parses a decimal string such as "1000.00".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d)
}

// MustMoney is NewMoneyFromString that panics, for constants and tests.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal rounds an aggregate to two places. Used for sums read back from the database.
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(MoneyScale)}
}

// Zero returns 0.00
func Zero() Money {
	return Money{}
}

// Decimal returns the underlying decimal amount
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// ClampZero returns m, or zero when m is negative.
func (m Money) ClampZero() Money {
	if m.amount.IsNegative() {
		return Zero()
	}
	return m
}

// Equals compares two amounts by value
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan returns true if m > other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual returns true if m >= other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// LessThan returns true if m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// String returns the amount with exactly two decimals
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// MarshalJSON encodes the amount as a fixed two-decimal string so no float ever appears on the wire.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	parsed, err := NewMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
