package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productseed/internal/datasource"
)

var _ datasource.Source = (*Local)(nil)

// TestLocalOpen covers success, missing file, and pre-canceled context.
func TestLocalOpen(t *testing.T) {
	t.Parallel()

	type tc struct {
		name            string
		prepare         func(t *testing.T) string
		makeCtx         func() context.Context
		wantErrIs       error
		wantErrContains string
		wantContent     string
	}

	withFile := func(t *testing.T) string {
		t.Helper()
		p := filepath.Join(t.TempDir(), "productos.csv")
		require.NoError(t, os.WriteFile(p, []byte("ID,Nombre\n1,Gasa\n"), 0o644))
		return p
	}

	cases := []tc{
		{
			name:        "success_reads_content",
			prepare:     withFile,
			makeCtx:     context.Background,
			wantContent: "ID,Nombre\n1,Gasa\n",
		},
		{
			name: "missing_file_errors_with_wrapping",
			prepare: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			makeCtx:         context.Background,
			wantErrIs:       os.ErrNotExist,
			wantErrContains: "open ",
		},
		{
			name:    "pre_canceled_context_short_circuits",
			prepare: withFile,
			makeCtx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErrIs: context.Canceled,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			rc, err := NewLocal(c.prepare(t)).Open(c.makeCtx())
			if c.wantErrIs != nil {
				require.ErrorIs(t, err, c.wantErrIs)
				if c.wantErrContains != "" {
					assert.Contains(t, err.Error(), c.wantErrContains)
				}
				assert.Nil(t, rc)
				return
			}

			require.NoError(t, err)
			defer rc.Close()
			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, c.wantContent, string(got))
		})
	}
}

func TestLocalWriteAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "seeds", "products.sql")
	l := NewLocal(p)
	ctx := context.Background()

	require.NoError(t, l.WriteAll(ctx, []byte("first, and longer\n")))
	require.NoError(t, l.WriteAll(ctx, []byte("second\n")))

	got, err := l.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(got), "file is overwritten wholesale")

	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestLocalWriteAll_Errors(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewLocal(filepath.Join(t.TempDir(), "x.sql")).WriteAll(ctx, nil), context.Canceled)

	// A regular file where the parent directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	err := NewLocal(filepath.Join(blocker, "out.sql")).WriteAll(context.Background(), []byte("x"))
	assert.ErrorContains(t, err, "create ")
}

// BenchmarkLocalOpen_Success measures the steady-state cost of opening a small file.
func BenchmarkLocalOpen_Success(b *testing.B) {
	p := filepath.Join(b.TempDir(), "data.csv")
	if err := os.WriteFile(p, []byte("payload"), 0o644); err != nil {
		b.Fatalf("write test file: %v", err)
	}

	src := NewLocal(p)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rc, err := src.Open(ctx)
		if err != nil {
			b.Fatal(err)
		}
		if err := rc.Close(); err != nil {
			b.Fatal(err)
		}
	}
}
