// Package transformer turns filtered source rows into the fixed-order
// literal tuples of the products statement.
//
// A ProductBuilder compiles one closure per destination column once, so the
// per-row loop does no schema lookups. Every normalizer it calls is pure;
// silently defaulted values are reported as builtin.Issue and never change
// the tuple.
package transformer

import (
	"context"
	"sort"
	"strings"

	"productseed/internal/record"
	"productseed/internal/schema"
	"productseed/internal/transformer/builtin"
)

// Options are the knobs of the tuple builder, taken from the job mapping.
type Options struct {
	SKUPrefix      string
	EANPlaceholder string
	// ForceActive pins is_active to true; otherwise "Activo" is read as a flag.
	ForceActive bool
}

// cell produces one literal from a row, plus an Issue when it defaulted.
type cell func(r record.Row, id string) (string, *builtin.Issue)

// ProductBuilder maps source rows onto schema columns.
type ProductBuilder struct {
	cols  []schema.Column
	cells []cell
	req   builtin.Require
	dedup builtin.DeDup
}

// NewProductBuilder compiles cols with opt.
func NewProductBuilder(cols []schema.Column, opt Options) *ProductBuilder {
	b := &ProductBuilder{
		cols:  cols,
		cells: make([]cell, len(cols)),
		req:   builtin.Require{Fields: []string{schema.LabelID, schema.LabelName}},
		dedup: builtin.DeDup{Keys: []string{schema.LabelID}},
	}
	for i, c := range cols {
		b.cells[i] = compile(c, opt)
	}
	return b
}

func compile(c schema.Column, opt Options) cell {
	label := c.Source
	switch c.Kind {
	case schema.KindSKU:
		return func(_ record.Row, id string) (string, *builtin.Issue) {
			return builtin.SKU(opt.SKUPrefix, id), nil
		}
	case schema.KindEAN:
		return func(r record.Row, id string) (string, *builtin.Issue) {
			return builtin.EANChecked(r.Value(label), id, opt.EANPlaceholder)
		}
	case schema.KindDate:
		return func(r record.Row, _ string) (string, *builtin.Issue) {
			return builtin.Date(r.Value(label)), nil
		}
	case schema.KindUnits:
		return func(r record.Row, _ string) (string, *builtin.Issue) {
			lit, iss := builtin.IntChecked(r.Value(label))
			if lit == builtin.Null {
				lit = "1"
			}
			return lit, iss
		}
	case schema.KindFlag:
		return func(r record.Row, _ string) (string, *builtin.Issue) {
			return builtin.BoolChecked(r.Value(label))
		}
	case schema.KindTemperature:
		return func(r record.Row, _ string) (string, *builtin.Issue) {
			lit, iss := builtin.BoolChecked(r.Value(label))
			if lit == "true" {
				return "'refrigerated'", iss
			}
			return "'ambient'", iss
		}
	case schema.KindActive:
		if opt.ForceActive {
			return func(record.Row, string) (string, *builtin.Issue) { return "true", nil }
		}
		return func(r record.Row, _ string) (string, *builtin.Issue) {
			return builtin.BoolChecked(r.Value(label))
		}
	default:
		return func(r record.Row, _ string) (string, *builtin.Issue) {
			return builtin.String(r.Value(label)), nil
		}
	}
}

// Columns returns the destination column names in tuple order.
func (b *ProductBuilder) Columns() []string { return schema.Names(b.cols) }

// ColumnLines returns the column names grouped as the preamble prints them.
func (b *ProductBuilder) ColumnLines() [][]string { return schema.Lines(b.cols) }

// Check fails with record.ErrMissingColumn when a strict label is absent.
func (b *ProductBuilder) Check(h record.Header) error {
	return h.Require(schema.StrictLabels(b.cols)...)
}

// Build renders one accepted row. The tuple always has len(Columns())
// literals. Issues carry the row's line, ID and source label; a label is
// reported at most once per reason.
func (b *ProductBuilder) Build(r record.Row) ([]string, []builtin.Issue) {
	id := strings.TrimSpace(r.Value(schema.LabelID))
	tuple := make([]string, len(b.cells))

	var (
		issues []builtin.Issue
		seen   map[string]struct{}
	)
	for i, fn := range b.cells {
		lit, iss := fn(r, id)
		tuple[i] = lit
		if iss == nil {
			continue
		}
		key := b.cols[i].Source + "\x00" + string(iss.Reason)
		if _, dup := seen[key]; dup {
			continue
		}
		if seen == nil {
			seen = make(map[string]struct{}, 2)
		}
		seen[key] = struct{}{}

		iss.Line, iss.ID, iss.Column = r.Line, id, b.cols[i].Source
		issues = append(issues, *iss)
	}
	return tuple, issues
}

// Result is the outcome of Transform.
type Result struct {
	// Read counts every data row of the export.
	Read int
	// Dropped counts rows rejected by the identity filter.
	Dropped int
	// Tuples holds one literal tuple per accepted row, in source order.
	Tuples [][]string
	// Issues is the validation report, ordered by line.
	Issues []builtin.Issue
}

// Transform checks the header, filters rows lacking ID or Nombre, and builds
// the remaining rows.
func (b *ProductBuilder) Transform(ctx context.Context, t *record.Table) (Result, error) {
	if err := b.Check(t.Header); err != nil {
		return Result{}, err
	}

	kept, dropped := b.req.Apply(t.Rows)
	res := Result{
		Read:    len(t.Rows),
		Dropped: len(dropped),
		Tuples:  make([][]string, 0, len(kept)),
	}
	for _, r := range dropped {
		res.Issues = append(res.Issues, b.missingIdentity(r))
	}

	for _, r := range kept {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		tuple, issues := b.Build(r)
		res.Tuples = append(res.Tuples, tuple)
		res.Issues = append(res.Issues, issues...)
	}
	res.Issues = append(res.Issues, b.dedup.Duplicates(kept)...)

	sort.SliceStable(res.Issues, func(i, j int) bool {
		return res.Issues[i].Line < res.Issues[j].Line
	})
	return res, nil
}

// missingIdentity names the first required label that was blank.
func (b *ProductBuilder) missingIdentity(r record.Row) builtin.Issue {
	iss := builtin.Issue{
		Reason: builtin.ReasonMissingIdentity,
		Line:   r.Line,
		ID:     strings.TrimSpace(r.Value(schema.LabelID)),
	}
	for _, f := range b.req.Fields {
		if v := r.Value(f); strings.TrimSpace(v) == "" {
			iss.Column, iss.Raw = f, v
			break
		}
	}
	return iss
}
