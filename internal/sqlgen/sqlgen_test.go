package sqlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(d Dialect) Statement {
	return Statement{
		Comment:        "Seed data for products generated from CSV",
		Table:          "public.products",
		ColumnLines:    [][]string{{"sku", "ean", "name"}, {"is_active"}},
		ConflictColumn: "sku",
		Dialect:        d,
		Tuples: [][]string{
			{"'LEGACY-1'", "'NO-EAN-1'", "'Gasa'", "true"},
			{"'LEGACY-2'", "'750000000000'", "'O''Brien'", "true"},
		},
	}
}

func TestRender_Postgres(t *testing.T) {
	t.Parallel()

	got, err := sample(Postgres).Render()
	require.NoError(t, err)

	want := "-- Seed data for products generated from CSV\n" +
		"INSERT INTO public.products (\n" +
		"    sku, ean, name,\n" +
		"    is_active\n" +
		") VALUES \n" +
		"('LEGACY-1', 'NO-EAN-1', 'Gasa', true),\n" +
		"('LEGACY-2', '750000000000', 'O''Brien', true)\n" +
		"ON CONFLICT (sku) DO NOTHING;\n"
	assert.Equal(t, want, string(got))
}

func TestRender_Dialects(t *testing.T) {
	t.Parallel()

	lite, err := sample(SQLite).Render()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(lite), "ON CONFLICT (sku) DO NOTHING;\n"))

	my, err := sample(MySQL).Render()
	require.NoError(t, err)
	s := string(my)
	assert.Contains(t, s, "INSERT IGNORE INTO public.products (\n")
	assert.True(t, strings.HasSuffix(s, "'O''Brien', true);\n"))
	assert.NotContains(t, s, "ON CONFLICT")
}

func TestRender_NoComment(t *testing.T) {
	t.Parallel()

	st := sample(Postgres)
	st.Comment = ""
	got, err := st.Render()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "INSERT INTO"))
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	st := sample(Postgres)
	st.Tuples = append(st.Tuples, []string{"'LEGACY-3'"})
	_, err := st.Render()
	require.ErrorIs(t, err, ErrFieldCount)
	assert.Contains(t, err.Error(), "tuple 3 has 1 fields, want 4")

	st.Tuples = nil
	_, err = st.Render()
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Dialect{"postgres": Postgres, " SQLite ": SQLite, "MYSQL": MySQL} {
		got, err := ParseDialect(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseDialect("oracle")
	assert.Error(t, err)
}

func TestChecksum(t *testing.T) {
	t.Parallel()

	a, err := sample(Postgres).Render()
	require.NoError(t, err)
	b, err := sample(Postgres).Render()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, Checksum(a), Checksum(b))
	assert.NotEqual(t, Checksum(a), Checksum(append(a, ' ')))
	assert.Len(t, FormatChecksum(Checksum(a)), 16)
	assert.Equal(t, "00000000000000ff", FormatChecksum(255))
}
