package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// MaxRateScale bounds the decimal exponent accepted from clients. Larger
	// exponents make rounding arbitrarily expensive.
	MaxRateScale = 32
	// MaxRateDigits is the integer digit count of numeric(12,2).
	MaxRateDigits = 10
)

// MaxRate is the largest amount the rate column can hold.
var MaxRate = decimal.RequireFromString("9999999999.99")

// Rate is a non-negative monetary amount kept at two fractional digits.
// It is written to JSON as a fixed-point string so no precision is lost.
type Rate struct {
	decimal.Decimal
}

func NewRate(d decimal.Decimal) Rate {
	return Rate{d.Round(2)}
}

// RateFromString parses s, e.g. "1250.50".
func RateFromString(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, err
	}
	return NewRate(d), nil
}

func (r Rate) String() string {
	return r.StringFixed(2)
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.StringFixed(2) + `"`), nil
}

// check returns the failed rule and its parameter, or "" when r fits the
// rate column after rounding. The exponent is checked first so no rule
// rescales an unbounded value.
func (r Rate) check() (string, string) {
	exp := int(r.Exponent())
	if exp < -MaxRateScale || exp > MaxRateScale {
		return "scale", strconv.Itoa(MaxRateScale)
	}
	if r.IsNegative() {
		return "gte", "0"
	}
	if r.IsZero() {
		return "", ""
	}
	if r.NumDigits()+exp > MaxRateDigits || r.Round(2).GreaterThan(MaxRate) {
		return "lte", MaxRate.StringFixed(2)
	}
	return "", ""
}
