// Package datasource defines where catalog exports are read from.
package datasource

import (
	"context"
	"io"
)

// Source opens an export for reading.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
