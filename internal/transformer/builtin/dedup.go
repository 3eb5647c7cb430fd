package builtin

import (
	"strings"

	"productseed/internal/record"
)

// DeDup finds rows whose key repeats an earlier row. It does not remove
// them: the statement's conflict clause already keeps the first occurrence,
// so duplicates only need to be reported.
type DeDup struct {
	// Keys are the labels forming the business key, e.g. ["ID"].
	Keys []string
}

// Duplicates returns one Issue per row whose key was already seen, in
// source order. Rows with a blank key part are skipped.
func (d DeDup) Duplicates(in []record.Row) []Issue {
	if len(d.Keys) == 0 {
		return nil
	}

	seen := make(map[string]int, len(in))
	var out []Issue
	for _, r := range in {
		key, ok := d.keyOf(r)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			out = append(out, Issue{
				Reason: ReasonDuplicateID,
				Line:   r.Line,
				ID:     strings.TrimSpace(r.Value(d.Keys[0])),
				Column: strings.Join(d.Keys, "+"),
				Raw:    strings.ReplaceAll(key, "\x1f", "+"),
			})
			continue
		}
		seen[key] = r.Line
	}
	return out
}

func (d DeDup) keyOf(r record.Row) (string, bool) {
	var b strings.Builder
	for _, k := range d.Keys {
		v := strings.TrimSpace(r.Value(k))
		if v == "" {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(v)
	}
	return b.String(), true
}
