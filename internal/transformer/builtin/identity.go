package builtin

import "strings"

// SKU synthesizes the stock-keeping unit from the source identifier.
func SKU(prefix, id string) string {
	return Quote(prefix + strings.TrimSpace(id))
}

// EAN renders the barcode column. A blank barcode becomes the placeholder
// followed by the source identifier. Spreadsheet exports turn long barcodes
// into scientific notation ("7.5E+11"); those are expanded back to digits,
// and kept raw when they cannot be.
func EAN(raw, id, placeholder string) string {
	lit, _ := EANChecked(raw, id, placeholder)
	return lit
}

// EANChecked is EAN plus an Issue when a scientific-notation barcode could
// not be expanded.
func EANChecked(raw, id, placeholder string) (string, *Issue) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Quote(placeholder + strings.TrimSpace(id)), nil
	}
	if !strings.Contains(strings.ToUpper(s), "E+") {
		return Quote(s), nil
	}
	d, ok := parseNumber(s)
	if !ok {
		return Quote(raw), &Issue{Reason: ReasonUnexpandedBarcode, Raw: raw}
	}
	return Quote(d.Truncate(0).String()), nil
}
