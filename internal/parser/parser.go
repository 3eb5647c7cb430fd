// Package parser dispatches a catalog export to the reader for its kind.
package parser

import (
	"context"
	"io"

	"github.com/go-faster/errors"

	"productseed/internal/config"
	csvparser "productseed/internal/parser/csv"
	"productseed/internal/parser/xlsx"
	"productseed/internal/record"
)

// ReadFunc reads a whole export into a table.
type ReadFunc func(ctx context.Context, r io.Reader, opt config.Options) (*record.Table, error)

var readers = map[string]ReadFunc{
	"csv":  csvparser.ReadAll,
	"xlsx": xlsx.ReadAll,
}

// ReadAll parses r with the reader registered for kind.
func ReadAll(ctx context.Context, kind string, r io.Reader, opt config.Options) (*record.Table, error) {
	fn, ok := readers[kind]
	if !ok {
		return nil, errors.Errorf("unknown parser kind %q", kind)
	}
	t, err := fn(ctx, r, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", kind)
	}
	return t, nil
}
