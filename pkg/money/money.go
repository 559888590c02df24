// Package money parses user-entered decimal text into amounts and rates.
//
// Amounts are arbitrary-precision decimals; no currency or rounding is applied.
package money

import (
	"fmt"
	"strings"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// MaxExponent bounds the decimal exponent accepted from text. Anything
// outside ±MaxExponent, such as "1e20000000", is rejected before it reaches
// a balance, where the arithmetic would grow with the exponent.
const MaxExponent = 32

// Parse converts s to an amount. Surrounding whitespace is ignored.
// Malformed or out-of-range input yields account.ErrInvalidAmount; sign
// checks are left to the ledger operation that consumes the amount.
func Parse(s string) (decimal.Decimal, error) {
	return parse(s, account.ErrInvalidAmount)
}

// ParseRate converts s to an interest rate such as "0.05" for 5%.
// Malformed or out-of-range input yields account.ErrInvalidRate.
func ParseRate(s string) (decimal.Decimal, error) {
	return parse(s, account.ErrInvalidRate)
}

func parse(s string, sentinel error) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", sentinel, s)
	}
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", sentinel, s)
	}
	return d, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
