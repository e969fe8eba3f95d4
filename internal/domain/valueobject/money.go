// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
//   - Side-effect free: Methods returns new instances rather than modifying state
package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency represents a monetary currency using ISO 4217 codes.
type Currency string

// Supported currencies in the system.
const (
	CurrencyUSD Currency = "USD" // US Dollar
	CurrencyPEN Currency = "PEN" // Peruvian Sol
)

// Money errors define domain-specific error conditions.
var (
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrCurrencyMismatch = errors.New("currency mismatch in operation")
	ErrDivisionByZero   = errors.New("cannot divide by zero")
)

// ParseCurrency validates an ISO 4217 code against the supported set.
func ParseCurrency(code string) (Currency, error) {
	switch c := Currency(code); c {
	case CurrencyUSD, CurrencyPEN:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
}

// Money represents a monetary value with currency.
// The amount is an exact decimal, so sums and tax splits never drift.
//
// Example usage:
//
//	price := valueobject.NewMoney(decimal.NewFromInt(3500), valueobject.CurrencyUSD)
//	total := price.Add(price.Mul(decimal.RequireFromString("0.18"))) // $4,130.00
type Money struct {
	// Amount is the exact decimal amount
	Amount decimal.Decimal `json:"amount"`

	// Currency using ISO 4217 code
	Currency Currency `json:"currency"`
}

// NewMoney creates a new Money value object.
//
// Parameters:
//   - amount: Exact decimal amount
//   - currency: ISO 4217 currency code
//
// Returns:
//   - Money: the created Money value object
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// Zero returns a zero-value Money in the specified currency.
func Zero(currency Currency) Money {
	return NewMoney(decimal.Zero, currency)
}

// Add adds two Money values and returns a new Money. A zero amount adopts
// the other operand's currency.
//
// Note: Panics with ErrCurrencyMismatch if two non-zero amounts differ in currency.
func (m Money) Add(other Money) Money {
	if m.Currency != other.Currency && !m.IsZero() && !other.IsZero() {
		panic(ErrCurrencyMismatch)
	}
	currency := m.Currency
	if currency == "" {
		currency = other.Currency
	}
	return NewMoney(m.Amount.Add(other.Amount), currency)
}

// Subtract subtracts another Money from this Money and returns a new Money.
// Panics if currencies do not match.
func (m Money) Subtract(other Money) Money {
	if m.Currency != other.Currency && !m.IsZero() && !other.IsZero() {
		panic(ErrCurrencyMismatch)
	}
	return NewMoney(m.Amount.Sub(other.Amount), m.Currency)
}

// Mul multiplies the amount by an exact factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return NewMoney(m.Amount.Mul(factor), m.Currency)
}

// Divide divides the amount by an exact divisor.
//
// Returns:
//   - Money: the divided Money value
//   - error: ErrDivisionByZero if divisor is zero
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return NewMoney(m.Amount.Div(divisor), m.Currency), nil
}

// NonNegative returns m, or zero when m is negative.
func (m Money) NonNegative() Money {
	if m.IsNegative() {
		return Zero(m.Currency)
	}
	return m
}

// IsZero checks if the Money amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative checks if the Money amount is less than zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Float64 converts the amount to a float64 representation.
// Only meant for transport; arithmetic stays on the decimal.
func (m Money) Float64() float64 {
	return m.Amount.InexactFloat64()
}

// String returns a formatted string representation of the Money.
//
// Returns:
//   - string: Formatted string (e.g., "USD 19.99")
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}

// amountPrinter groups thousands the way the storefront shows prices.
var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// Format returns the money formatted with its currency symbol and
// two decimal places.
//
// Returns:
//   - string: Formatted string with currency symbol (e.g., "$1,026.60")
func (m Money) Format() string {
	rounded := m.Amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	digits := amountPrinter.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(2)))
	return sign + currencySymbol(m.Currency) + digits
}

// currencySymbol returns the symbol for a given currency.
func currencySymbol(c Currency) string {
	symbols := map[Currency]string{
		CurrencyUSD: "$",
		CurrencyPEN: "S/ ",
	}

	if symbol, ok := symbols[c]; ok {
		return symbol
	}
	return string(c) + " "
}
