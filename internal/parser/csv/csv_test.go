package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"productseed/internal/config"
)

// makeCSV builds a CSV document in-memory with the given header and rows,
// using encoding/csv for quoting.
func makeCSV(delim rune, header []string, rows [][]string) []byte {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	w.Comma = delim
	_ = w.Write(header)
	for _, r := range rows {
		_ = w.Write(r)
	}
	w.Flush()
	return b.Bytes()
}

func TestReadAll_BOMAndHeaderLookup(t *testing.T) {
	t.Parallel()

	body := append([]byte("\xEF\xBB\xBF"), makeCSV(',', []string{"ID", "Nombre", "Código de Barras"}, [][]string{
		{"1", "Ibuprofeno 400", "7.5E+11"},
		{"2", "O'Brien gel", ""},
	})...)

	tbl, err := ReadAll(context.Background(), bytes.NewReader(body), config.Options{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)

	assert.True(t, tbl.Header.Has("ID"), "BOM must not stick to the first label")
	assert.Equal(t, "1", tbl.Rows[0].Value("ID"))
	assert.Equal(t, "7.5E+11", tbl.Rows[0].Value("Código de Barras"))
	assert.Equal(t, "O'Brien gel", tbl.Rows[1].Value("Nombre"))
	assert.Equal(t, 2, tbl.Rows[0].Line)
	assert.Equal(t, 3, tbl.Rows[1].Line)
}

func TestReadAll_QuotedMultilineKeepsLineNumbers(t *testing.T) {
	t.Parallel()

	body := "ID,Características\n1,\"línea uno\nlínea dos\"\n2,simple\n"
	tbl, err := ReadAll(context.Background(), strings.NewReader(body), config.Options{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "línea uno\nlínea dos", tbl.Rows[0].Value("Características"))
	assert.Equal(t, 2, tbl.Rows[0].Line)
	assert.Equal(t, 4, tbl.Rows[1].Line)
}

func TestReadAll_ShortRowsAndBlankLines(t *testing.T) {
	t.Parallel()

	body := "ID,Nombre,Cantidad\n1,Gasa\n\n2,Venda,10,extra\n"
	tbl, err := ReadAll(context.Background(), strings.NewReader(body), config.Options{})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)

	_, ok := tbl.Rows[0].Get("Cantidad")
	assert.False(t, ok, "short row leaves trailing labels absent")
	assert.Equal(t, "10", tbl.Rows[1].Value("Cantidad"))
}

func TestReadAll_Options(t *testing.T) {
	t.Parallel()

	body := makeCSV(';', []string{"ID", "Nombre"}, [][]string{{" 7 ", "  Alcohol 70%  "}})

	tbl, err := ReadAll(context.Background(), bytes.NewReader(body), config.Options{"comma": ";"})
	require.NoError(t, err)
	assert.Equal(t, " 7 ", tbl.Rows[0].Value("ID"), "cells are raw by default")

	tbl, err = ReadAll(context.Background(), bytes.NewReader(body), config.Options{"comma": ";", "trim_space": true})
	require.NoError(t, err)
	assert.Equal(t, "7", tbl.Rows[0].Value("ID"))
	assert.Equal(t, "Alcohol 70%", tbl.Rows[0].Value("Nombre"))
}

func TestReadAll_BareQuotes(t *testing.T) {
	t.Parallel()

	body := "ID,Talla/Capacidad\n1,5\" x 5\"\n"

	tbl, err := ReadAll(context.Background(), strings.NewReader(body), config.Options{})
	require.NoError(t, err)
	assert.Equal(t, `5" x 5"`, tbl.Rows[0].Value("Talla/Capacidad"))

	_, err = ReadAll(context.Background(), strings.NewReader(body), config.Options{"lazy_quotes": false})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv read")
}

func TestReadAll_Encodings(t *testing.T) {
	t.Parallel()

	plain := "ID,Nombre,Uso Crónico\n1,Metformina,TRUE\n"

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(plain)
	require.NoError(t, err)
	cp1252, err := charmap.Windows1252.NewEncoder().String(plain)
	require.NoError(t, err)

	cases := []struct {
		name string
		body string
		enc  string
	}{
		{"utf16_bom_autodetected", utf16, ""},
		{"utf16_named", utf16, "utf-16"},
		{"windows_1252", cp1252, "windows-1252"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tbl, err := ReadAll(context.Background(), strings.NewReader(tc.body), config.Options{"encoding": tc.enc})
			require.NoError(t, err)
			require.Len(t, tbl.Rows, 1)
			assert.Equal(t, "TRUE", tbl.Rows[0].Value("Uso Crónico"))
		})
	}

	_, err = ReadAll(context.Background(), strings.NewReader(plain), config.Options{"encoding": "ebcdic"})
	assert.ErrorContains(t, err, "unsupported encoding")
}

func TestReadAll_EmptyInputAndCancel(t *testing.T) {
	t.Parallel()

	tbl, err := ReadAll(context.Background(), strings.NewReader(""), config.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Header.Len())
	assert.Empty(t, tbl.Rows)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadAll(ctx, strings.NewReader("ID\n1\n"), config.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
