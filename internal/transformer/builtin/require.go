package builtin

import (
	"strings"

	"productseed/internal/record"
)

// Require drops any row missing a non-blank value for one of Fields.
type Require struct {
	Fields []string
}

// Accept reports whether every required field of r is present and not
// blank.
func (q Require) Accept(r record.Row) bool {
	for _, f := range q.Fields {
		v, ok := r.Get(f)
		if !ok || strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Apply splits in into the accepted rows and the dropped ones, both in
// source order.
func (q Require) Apply(in []record.Row) (kept, dropped []record.Row) {
	kept = make([]record.Row, 0, len(in))
	for _, r := range in {
		if q.Accept(r) {
			kept = append(kept, r)
			continue
		}
		dropped = append(dropped, r)
	}
	return kept, dropped
}
