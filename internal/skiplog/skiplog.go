// Package skiplog writes the validation report: one CSV line per dropped
// row or silently defaulted value.
package skiplog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-faster/errors"

	"productseed/internal/transformer/builtin"
)

// Header is the first line of every report.
var Header = []string{"reason", "line_number", "id", "column", "raw_value"}

// Stats counts report entries per reason and writes them as CSV.
type Stats struct {
	reasons map[builtin.Reason]int
	w       *csv.Writer
	f       *os.File
}

// Open creates (or truncates) the report at path, creating parent
// directories, and writes the header.
func Open(path string) (*Stats, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create dir %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create report %s", path)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "write report header")
	}
	return &Stats{reasons: make(map[builtin.Reason]int), w: w, f: f}, nil
}

// Add records one issue.
func (s *Stats) Add(iss builtin.Issue) error {
	s.reasons[iss.Reason]++
	return s.w.Write([]string{string(iss.Reason), strconv.Itoa(iss.Line), iss.ID, iss.Column, iss.Raw})
}

// Count is the number of entries for one reason.
type Count struct {
	Reason builtin.Reason
	N      int
}

// Counts returns the per-reason totals sorted by reason.
func (s *Stats) Counts() []Count {
	out := make([]Count, 0, len(s.reasons))
	for r, n := range s.reasons {
		out = append(out, Count{Reason: r, N: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reason < out[j].Reason })
	return out
}

// Close flushes the CSV writer and closes the file.
func (s *Stats) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return errors.Wrap(err, "flush report")
	}
	return s.f.Close()
}
