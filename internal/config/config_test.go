package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault_MatchesHistoricalConstants(t *testing.T) {
	t.Parallel()

	j := Default()
	assert.Equal(t, "supabase/seeds/productos.csv", j.Source.Path)
	assert.Equal(t, "supabase/seeds/products.sql", j.Output.Path)
	assert.Equal(t, "public.products", j.Output.Table)
	assert.Equal(t, "sku", j.Output.ConflictColumn)
	assert.Equal(t, "postgres", j.Output.Dialect)
	assert.Equal(t, "csv", j.Parser.Kind)
	assert.Equal(t, "LEGACY-", j.Mapping.SKUPrefix)
	assert.Equal(t, "NO-EAN-", j.Mapping.EANPlaceholder)
	assert.True(t, j.Mapping.ForceActiveEnabled())
	assert.NotNil(t, j.Parser.Options)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "job.json", `{
	  "source": {"path": "exports/catalog.xlsx"},
	  "parser": {"options": {"sheet": "Productos"}},
	  "mapping": {"force_active": false}
	}`)

	raw, err := Load(p)
	require.NoError(t, err)

	j := WithDefaults(raw)
	assert.Equal(t, "xlsx", j.Parser.Kind, "kind inferred from extension")
	assert.Equal(t, "Productos", j.Parser.Options.String("sheet", ""))
	assert.Equal(t, DefaultOutputPath, j.Output.Path)
	assert.False(t, j.Mapping.ForceActiveEnabled())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, "bad.json", `{"sourse": {}}`)
	_, err = Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestOptions_TypedAccess(t *testing.T) {
	t.Parallel()

	var o Options
	require.NoError(t, o.UnmarshalJSON([]byte("null")))
	assert.NotNil(t, o)

	require.NoError(t, o.UnmarshalJSON([]byte(`{"comma": ";", "lazy_quotes": true, "n": 3}`)))
	assert.Equal(t, ';', o.Rune("comma", ','))
	assert.True(t, o.Bool("lazy_quotes", false))
	assert.Equal(t, "x", o.String("n", "x"), "non-string falls back")
	assert.Equal(t, ',', o.Rune("missing", ','))
}

func TestKindForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "xlsx", KindForPath("a/B.XLSX"))
	assert.Equal(t, "csv", KindForPath("a/b.csv"))
	assert.Equal(t, "csv", KindForPath("noext"))
}

func TestOverrides(t *testing.T) {
	t.Parallel()

	o, err := ReadOverrides(map[string]string{
		"PRODUCTSEED_INPUT":   "in.csv",
		"PRODUCTSEED_DIALECT": "sqlite",
		"PRODUCTSEED_DSN":     "file:seed.db",
		"UNRELATED":           "x",
	})
	require.NoError(t, err)

	j := o.Apply(Default())
	assert.Equal(t, "in.csv", j.Source.Path)
	assert.Equal(t, "sqlite", j.Output.Dialect)
	assert.Equal(t, "file:seed.db", j.Storage.DSN)
	assert.Equal(t, DefaultOutputPath, j.Output.Path, "unset override keeps value")
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(""))
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))

	p := writeFile(t, ".env", "PRODUCTSEED_TEST_DOTENV=loaded\n")
	t.Setenv("PRODUCTSEED_TEST_DOTENV", "")
	os.Unsetenv("PRODUCTSEED_TEST_DOTENV")
	require.NoError(t, LoadDotEnv(p))
	assert.Equal(t, "loaded", os.Getenv("PRODUCTSEED_TEST_DOTENV"))
}
