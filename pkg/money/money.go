// Package money holds the fixed-precision amount helpers shared by the cost
// model, the receipt renderers and the exporters. Every amount is a
// decimal.Decimal; floats never enter the arithmetic.
package money

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is the ISO 4217 code printed in front of formatted amounts.
const Currency = "SLE"

// Scale is the number of minor-unit digits kept for stored amounts.
const Scale int32 = 2

// MaxIntegerDigits bounds accepted amounts below 10^12, which fits both the
// decimal(15,2) money columns and the decimal(15,3) quantity column.
const MaxIntegerDigits = 12

// MaxFractionDigits bounds the fraction digits accepted before rounding.
const MaxFractionDigits = 12

// ErrNotNumeric is returned by Parse for input that is not a decimal number.
var ErrNotNumeric = errors.New("not a number")

// Range errors returned by CheckRange.
var (
	ErrTooLarge   = errors.New("too large")
	ErrTooPrecise = errors.New("too many decimal places")
)

var (
	hundred = decimal.NewFromInt(100)
	display = message.NewPrinter(language.English)
)

// Parse reads a decimal string such as "12", "12.5" or " 0.75 ".
// Empty input is an error; callers decide whether a missing value means zero.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrNotNumeric
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	return d, nil
}

// CheckRange reports whether d fits the stored columns. It looks only at the
// exponent and coefficient size, so input such as "1e999999999" is rejected
// without being expanded. Run it before rounding or comparing user input.
func CheckRange(d decimal.Decimal) error {
	exp := int(d.Exponent())
	if exp < -MaxFractionDigits {
		return ErrTooPrecise
	}
	if exp > MaxIntegerDigits {
		return ErrTooLarge
	}
	if d.IsZero() {
		return nil
	}
	// more than 128 bits is at least 39 digits
	if d.Coefficient().BitLen() > 128 || d.NumDigits()+exp > MaxIntegerDigits {
		return ErrTooLarge
	}
	return nil
}

// Round rounds half away from zero to the minor unit.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Percent returns base * pct / 100 rounded to the minor unit.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(hundred))
}

// Sum adds amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Format renders an amount as "SLE 1,234.50" (digits 2) or "SLE 1,235" (digits 0).
func Format(amount decimal.Decimal, digits int) string {
	return Currency + " " + FormatNumber(amount, digits)
}

// FormatNumber renders an amount with thousands grouping and no currency code.
func FormatNumber(amount decimal.Decimal, digits int) string {
	if digits < 0 {
		digits = 0
	}
	text := amount.StringFixed(int32(digits))
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	whole, frac, _ := strings.Cut(text, ".")
	if frac != "" {
		frac = "." + frac
	}
	return sign + groupDigits(whole) + frac
}

// groupDigits inserts thousands separators into a run of digits. Values that
// fit an int64 go through the locale printer; longer runs are grouped by hand.
func groupDigits(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return display.Sprint(number.Decimal(n))
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatPlain renders an amount with a fixed number of fraction digits and no
// grouping, suitable for narrow receipt columns.
func FormatPlain(amount decimal.Decimal) string {
	return amount.StringFixed(Scale)
}
