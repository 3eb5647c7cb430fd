// Package sqlgen renders the single seed INSERT statement.
//
// The statement is built from already-rendered SQL literals; this package
// does no escaping of its own. Identifiers (table, columns, conflict key) are
// emitted verbatim.
package sqlgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/zeebo/xxh3"
)

var (
	// ErrFieldCount is returned when a tuple's width differs from the column
	// list.
	ErrFieldCount = errors.New("tuple field count does not match column list")
	// ErrNoRows is returned when there is nothing to insert; an INSERT with
	// an empty VALUES list is not valid SQL.
	ErrNoRows = errors.New("no rows to insert")
)

// Dialect selects the conflict-ignore syntax.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
)

// ParseDialect validates s as a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case Postgres, SQLite, MySQL:
		return d, nil
	default:
		return "", errors.Errorf("unknown dialect %q", s)
	}
}

// Statement is one INSERT over every accepted row.
type Statement struct {
	// Comment is written as a leading "-- " line; empty omits it.
	Comment string
	Table   string
	// ColumnLines is the column list, one slice per preamble line.
	ColumnLines    [][]string
	ConflictColumn string
	Dialect        Dialect
	Tuples         [][]string
}

// Width is the number of columns.
func (s Statement) Width() int {
	n := 0
	for _, l := range s.ColumnLines {
		n += len(l)
	}
	return n
}

// Render produces the statement text:
//
//	-- <Comment>
//	INSERT INTO <Table> (
//	    <col>, <col>,
//	    <col>
//	) VALUES
//	(<lit>, ...),
//	(<lit>, ...)
//	ON CONFLICT (<ConflictColumn>) DO NOTHING;
//
// The VALUES line keeps a trailing space. The mysql dialect writes
// INSERT IGNORE INTO and closes the last tuple with ";" instead of the
// conflict clause. Every tuple must have Width() literals.
func (s Statement) Render() ([]byte, error) {
	if len(s.Tuples) == 0 {
		return nil, ErrNoRows
	}
	width := s.Width()
	for i, t := range s.Tuples {
		if len(t) != width {
			return nil, errors.Wrapf(ErrFieldCount, "tuple %d has %d fields, want %d", i+1, len(t), width)
		}
	}

	var b bytes.Buffer
	if s.Comment != "" {
		fmt.Fprintf(&b, "-- %s\n", s.Comment)
	}
	verb := "INSERT INTO"
	if s.Dialect == MySQL {
		verb = "INSERT IGNORE INTO"
	}
	fmt.Fprintf(&b, "%s %s (\n", verb, s.Table)
	for i, l := range s.ColumnLines {
		b.WriteString("    ")
		b.WriteString(strings.Join(l, ", "))
		if i < len(s.ColumnLines)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(") VALUES \n")

	for i, t := range s.Tuples {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteByte('(')
		b.WriteString(strings.Join(t, ", "))
		b.WriteByte(')')
	}

	if s.Dialect == MySQL {
		b.WriteString(";\n")
	} else {
		fmt.Fprintf(&b, "\nON CONFLICT (%s) DO NOTHING;\n", s.ConflictColumn)
	}
	return b.Bytes(), nil
}

// Checksum is the xxh3-64 digest of rendered statement bytes.
func Checksum(b []byte) uint64 {
	return xxh3.Hash(b)
}

// FormatChecksum renders a checksum as 16 hex digits.
func FormatChecksum(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
