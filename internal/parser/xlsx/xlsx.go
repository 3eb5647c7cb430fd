// Package xlsx reads a spreadsheet catalog export into header-keyed rows.
package xlsx

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"productseed/internal/config"
	"productseed/internal/record"
)

// ReadAll parses one worksheet of the workbook in src. The first non-blank
// row is the header. Cells are read as their formatted text, which keeps
// barcodes typed as numbers in the scientific form the CSV export shows.
//
// Options:
//   - sheet (string; default: first sheet of the workbook)
func ReadAll(ctx context.Context, src io.Reader, opt config.Options) (*record.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheet := opt.String("sheet", "")
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "open sheet %q", sheet)
	}
	defer rows.Close()

	var (
		t    *record.Table
		line int
	)
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++

		cells, err := rows.Columns()
		if err != nil {
			return nil, errors.Wrapf(err, "read row %d", line)
		}
		if t == nil {
			if blank(cells) {
				continue
			}
			t = &record.Table{Header: record.NewHeader(cells)}
			continue
		}

		r := record.NewRow(line, t.Header, cells)
		if r.Blank() {
			continue
		}
		t.Rows = append(t.Rows, r)
	}
	if err := rows.Error(); err != nil {
		return nil, errors.Wrapf(err, "iterate sheet %q", sheet)
	}
	if t == nil {
		return &record.Table{Header: record.NewHeader(nil)}, nil
	}
	return t, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
