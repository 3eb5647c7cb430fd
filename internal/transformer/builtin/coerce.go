package builtin

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Accepted numbers are bounded to the float64 range the exports are produced
// from. Anything larger than maxExponent is unparseable; anything smaller
// than the least subnormal reads as zero, as float parsing would.
const (
	maxExponent = 308
	minExponent = -324
)

// ParseFlag reports the flag value of raw and whether raw was recognized.
// Only "TRUE" (any case, trimmed) is true. Blank and "FALSE" are recognized
// as false; anything else is false but unrecognized.
func ParseFlag(raw string) (value, recognized bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TRUE":
		return true, true
	case "FALSE", "":
		return false, true
	default:
		return false, false
	}
}

// Bool renders raw as true or false.
func Bool(raw string) string {
	lit, _ := BoolChecked(raw)
	return lit
}

// BoolChecked is Bool plus an Issue when raw was not a recognized flag.
func BoolChecked(raw string) (string, *Issue) {
	v, ok := ParseFlag(raw)
	lit := "false"
	if v {
		lit = "true"
	}
	if !ok {
		return lit, &Issue{Reason: ReasonUnrecognizedBoolean, Raw: raw}
	}
	return lit, nil
}

// parseNumber reads trimmed raw as a decimal, accepting plain and
// scientific forms such as "12.0" and "7.5E+11".
func parseNumber(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, false
	}
	e := int64(d.Exponent()) + int64(d.NumDigits())
	if e > maxExponent+1 {
		return decimal.Decimal{}, false
	}
	if e < minExponent {
		return decimal.Zero, true
	}
	return d, true
}

// Int renders raw as an integer literal truncated toward zero, or NULL when
// blank or unparseable.
func Int(raw string) string {
	lit, _ := IntChecked(raw)
	return lit
}

// IntChecked is Int plus an Issue when a non-blank raw failed to parse.
func IntChecked(raw string) (string, *Issue) {
	if strings.TrimSpace(raw) == "" {
		return Null, nil
	}
	d, ok := parseNumber(raw)
	if !ok {
		return Null, &Issue{Reason: ReasonInvalidInteger, Raw: raw}
	}
	return d.Truncate(0).String(), nil
}

// Decimal renders raw as a canonical decimal literal ("12.50" becomes 12.5),
// or NULL when blank or unparseable. The products mapping has no decimal
// column yet.
func Decimal(raw string) string {
	lit, _ := DecimalChecked(raw)
	return lit
}

// DecimalChecked is Decimal plus an Issue when a non-blank raw failed to parse.
func DecimalChecked(raw string) (string, *Issue) {
	if strings.TrimSpace(raw) == "" {
		return Null, nil
	}
	d, ok := parseNumber(raw)
	if !ok {
		return Null, &Issue{Reason: ReasonInvalidDecimal, Raw: raw}
	}
	return d.String(), nil
}
