package payroll

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

// Money is a monetary amount rounded half-up to two decimal places.
// It encodes as a bare JSON number.
type Money struct {
	d decimal.Decimal
}

// NewMoney rounds the decimal reading of f (shortest representation) to cents,
// so 12.345 becomes 12.35.
func NewMoney(f float64) Money {
	return Money{d: decimal.NewFromFloat(f).Round(moneyPlaces)}
}

// MoneyFromDecimal rounds d to cents.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(moneyPlaces)}
}

// MoneyFromInt builds an exact whole amount.
func MoneyFromInt(v int) Money {
	return Money{d: decimal.NewFromInt(int64(v)).Round(moneyPlaces)}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Float64 returns the nearest float64.
func (m Money) Float64() float64 { return m.d.InexactFloat64() }

// Sub returns m-o rounded to cents.
func (m Money) Sub(o Money) Money { return MoneyFromDecimal(m.d.Sub(o.d)) }

// Equal compares amounts numerically.
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) String() string { return m.d.StringFixed(moneyPlaces) }

// MarshalJSON writes the amount as a JSON number with trailing zeros trimmed.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		m.d = decimal.Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("payroll: invalid money value %s: %w", data, err)
	}
	m.d = d.Round(moneyPlaces)
	return nil
}

// RoundTo rounds f half-up to places decimals using its decimal reading.
func RoundTo(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}
