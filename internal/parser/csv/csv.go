// Package csv reads a delimited catalog export into header-keyed rows.
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/text/transform"

	"productseed/internal/config"
	"productseed/internal/record"
)

// ReadAll parses the whole export from src. The first record is the header.
//
// Options:
//   - comma (string; first rune used; default ',')
//   - lazy_quotes (bool; default true) accepts bare quotes such as 5" inside
//     unquoted cells, which spreadsheet exports emit for inch sizes
//   - trim_space (bool; default false) trims every cell
//   - encoding (string; "utf-8" default, "utf-16", "windows-1252")
//
// Blank lines are skipped by encoding/csv. A malformed record is fatal and
// the error names its line.
func ReadAll(ctx context.Context, src io.Reader, opt config.Options) (*record.Table, error) {
	dec, err := newDecoder(opt.String("encoding", ""))
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(src, dec))
	cr.Comma = opt.Rune("comma", ',')
	cr.LazyQuotes = opt.Bool("lazy_quotes", true)
	cr.FieldsPerRecord = -1
	trim := opt.Bool("trim_space", false)

	hdr, err := cr.Read()
	if err == io.EOF {
		return &record.Table{Header: record.NewHeader(nil)}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}

	t := &record.Table{Header: record.NewHeader(hdr)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "csv read")
		}

		line, _ := cr.FieldPos(0)
		if trim {
			for i := range rec {
				rec[i] = strings.TrimSpace(rec[i])
			}
		}
		t.Rows = append(t.Rows, record.NewRow(line, t.Header, rec))
	}
}
