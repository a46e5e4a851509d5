package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an arbitrary-precision currency amount expressed in major units.
// The zero value is zero.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// FromCents builds an amount from minor units.
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -2)}
}

// FromUnits builds an amount from a decimal number of major units, e.g. the
// "200" of a spend threshold or the "2.54" of a per-unit discount.
func FromUnits(units decimal.Decimal) Money {
	return Money{d: units}
}

// FromInt builds an amount from a whole number of major units.
func FromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// Parse reads a decimal amount such as "19.99".
func Parse(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", value, err)
	}
	return Money{d: d}, nil
}

// MustParse behaves like Parse but panics on error. Useful for tests and static tables.
func MustParse(value string) Money {
	m, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }

func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// MulInt multiplies by a quantity.
func (m Money) MulInt(n int) Money { return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))} }

// MulDecimal multiplies by an arbitrary factor.
func (m Money) MulDecimal(f decimal.Decimal) Money { return Money{d: m.d.Mul(f)} }

// DivInt divides by n using the package division precision. n must be non-zero.
func (m Money) DivInt(n int) Money { return Money{d: m.d.Div(decimal.NewFromInt(int64(n)))} }

// Round rounds half away from zero to the given number of decimal places.
func (m Money) Round(places int32) Money { return Money{d: m.d.Round(places)} }

func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }

func (m Money) GreaterThanOrEqual(o Money) bool { return m.d.GreaterThanOrEqual(o.d) }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

func (m Money) IsZero() bool { return m.d.IsZero() }

// Max returns the larger of a and b.
func Max(a, b Money) Money {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// String renders the exact decimal value.
func (m Money) String() string { return m.d.String() }

// MarshalJSON encodes the amount as a quoted decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.d.MarshalJSON()
}

// UnmarshalJSON accepts both quoted strings and bare numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	m.d = d
	return nil
}
