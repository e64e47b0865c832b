package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/sangkips/aluworks-api/pkg/money"
	"github.com/shopspring/decimal"
)

// Amount is a numeric form value kept as sent. JSON numbers and numeric
// strings are both accepted; null leaves it empty. Decoding never fails, so a
// bad value surfaces as an "amount" field error instead of a malformed body.
type Amount string

// UnmarshalJSON stores the raw number or the content of a quoted string
func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	*a = Amount(b)
	return nil
}

// Decimal returns the parsed value; an empty amount is zero. Call it only
// after the "amount" binding rule has passed.
func (a Amount) Decimal() decimal.Decimal {
	d, err := money.Parse(string(a))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalPtr returns nil for an amount that was not sent
func (a *Amount) DecimalPtr() *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal()
	return &d
}
