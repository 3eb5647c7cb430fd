// Package record holds the header-keyed source row model shared by the
// parsers and the row tuple builder.
package record

import (
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/text/unicode/norm"
)

// ErrMissingColumn is returned when a required source label is absent from
// the header.
var ErrMissingColumn = errors.New("missing column")

const utf8BOM = "\uFEFF"

// CanonicalLabel normalizes a header label for lookups: a stray BOM and
// surrounding whitespace are removed and the text is composed to NFC, so a
// label exported as "Código" matches "Código".
func CanonicalLabel(s string) string {
	s = strings.TrimPrefix(s, utf8BOM)
	return norm.NFC.String(strings.TrimSpace(s))
}

// Header is the ordered set of labels read from the first row of an export.
type Header struct {
	labels []string
	index  map[string]int
}

// NewHeader canonicalizes labels and indexes them. When a label repeats, the
// last occurrence wins.
func NewHeader(labels []string) Header {
	h := Header{
		labels: make([]string, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for i, l := range labels {
		c := CanonicalLabel(l)
		h.labels[i] = c
		h.index[c] = i
	}
	return h
}

// Labels returns the canonical labels in source order.
func (h Header) Labels() []string { return h.labels }

// Len is the number of header cells.
func (h Header) Len() int { return len(h.labels) }

// Has reports whether label is present.
func (h Header) Has(label string) bool {
	_, ok := h.index[CanonicalLabel(label)]
	return ok
}

// Require returns an error wrapping ErrMissingColumn that names every label
// absent from the header, or nil.
func (h Header) Require(labels ...string) error {
	var missing []string
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		if !h.Has(l) {
			missing = append(missing, l)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.Wrapf(ErrMissingColumn, "header lacks %q", missing)
}

// Row is one source record keyed by header label. Values are kept raw.
type Row struct {
	// Line is the 1-based physical line (CSV) or row number (XLSX) of the
	// record in the export.
	Line int

	header Header
	cells  []string
}

// NewRow binds cells to header. Cells beyond the header are ignored; a short
// row leaves the trailing labels absent.
func NewRow(line int, h Header, cells []string) Row {
	return Row{Line: line, header: h, cells: cells}
}

// Get returns the raw value for label and whether the label is present in
// both the header and this row.
func (r Row) Get(label string) (string, bool) {
	i, ok := r.header.index[CanonicalLabel(label)]
	if !ok || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

// Value returns the raw value for label, or "" when absent.
func (r Row) Value(label string) string {
	v, _ := r.Get(label)
	return v
}

// Blank reports whether every cell of the row is empty after trimming.
func (r Row) Blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Table is a fully read export.
type Table struct {
	Header Header
	Rows   []Row
}
