package goldfees

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the only currency this tool deals in. The sponsor reference
// tables publish proceeds in USD and broker exports are expected to match.
const Currency = "USD"

// Money represents an exact monetary value in [Currency].
//
// Arithmetic is exact: nothing is rounded until the caller asks for it, so a
// running basis threaded through years of transactions carries no drift.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal literal into a Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value)} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value)} }

// Round rounds to whole cents using banker's rounding (round half to even).
func (m Money) Round() Money { return Money{value: m.value.RoundBank(2)} }

// String returns the exact value with trailing zeros trimmed, e.g. "1500".
func (m Money) String() string { return m.value.String() }

// Cents returns the value formatted with exactly two decimal places, e.g.
// "15.00".
func (m Money) Cents() string { return m.value.StringFixed(2) }

// Display formats the value as a human readable USD amount, e.g. "$1,500.00".
func (m Money) Display() string {
	cur := *money.New(0, Currency).Currency()
	cents := m.value.Shift(int32(cur.Fraction)).RoundBank(0)
	return cur.Formatter().Format(cents.IntPart())
}
