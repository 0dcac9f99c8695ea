package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexString holds a form value that clients send either as a JSON string or a JSON
// number. Any other JSON shape decodes to the zero value instead of failing.
type FlexString struct {
	Text   string
	number bool
}

// NewFlexString builds a FlexString from its textual form.
func NewFlexString(text string) FlexString {
	return FlexString{Text: text}
}

// NewFlexNumber builds a FlexString from a numeric value.
func NewFlexNumber(v float64) FlexString {
	return FlexString{Text: strconv.FormatFloat(v, 'f', -1, 64), number: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = FlexString{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		f.Text = s
	case '{', '[':
	case 't', 'f':
		f.Text = string(trimmed)
	default:
		v, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return nil
		}
		*f = NewFlexNumber(v)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexString) MarshalJSON() ([]byte, error) {
	if f.number {
		return []byte(f.Text), nil
	}
	if f.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(f.Text)
}

// Present reports whether the value counts as provided: non-blank text, and numbers
// other than zero.
func (f FlexString) Present() bool {
	if strings.TrimSpace(f.Text) == "" {
		return false
	}
	if f.number {
		v, err := strconv.ParseFloat(f.Text, 64)
		return err == nil && v != 0
	}
	return true
}

// Bounds for numeric input; values outside them are treated as non-numeric.
const (
	maxDecimalExponent = 12
	maxDecimalDigits   = 24
)

// Decimal parses the value as a number; ok is false for absent, non-numeric or
// out-of-range input.
func (f FlexString) Decimal() (decimal.Decimal, bool) {
	if !f.Present() {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(f.Text))
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return decimal.Zero, false
	}
	if d.NumDigits() > maxDecimalDigits {
		return decimal.Zero, false
	}
	return d, true
}

func (f FlexString) String() string {
	return f.Text
}
