package record

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalLabel(t *testing.T) {
	t.Parallel()

	decomposed := "Co\u0301digo de Barras"
	assert.Equal(t, "Código de Barras", CanonicalLabel(decomposed))
	assert.Equal(t, "ID", CanonicalLabel("\uFEFF ID "))
}

func TestHeader_HasAndRequire(t *testing.T) {
	t.Parallel()

	h := NewHeader([]string{"\uFEFFID", "Nombre", "Características"})
	assert.Equal(t, []string{"ID", "Nombre", "Características"}, h.Labels())
	assert.Equal(t, 3, h.Len())
	assert.True(t, h.Has("Características"))
	assert.False(t, h.Has("Cantidad"))

	require.NoError(t, h.Require("ID", "Nombre"))

	err := h.Require("Cantidad", "ID", "Cantidad", "Uso Crónico")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), `"Cantidad"`)
	assert.Contains(t, err.Error(), `"Uso Crónico"`)
}

func TestRow_GetShortAndDuplicate(t *testing.T) {
	t.Parallel()

	h := NewHeader([]string{"ID", "Nombre", "ID"})
	r := NewRow(2, h, []string{"1", "Aspirina"})

	_, ok := r.Get("ID")
	assert.False(t, ok, "duplicate label resolves to the last cell, which this short row lacks")

	v, ok := r.Get("Nombre")
	assert.True(t, ok)
	assert.Equal(t, "Aspirina", v)

	assert.Equal(t, "", r.Value("Nope"))
	assert.Equal(t, 2, r.Line)
}

func TestRow_Blank(t *testing.T) {
	t.Parallel()

	h := NewHeader([]string{"a", "b"})
	assert.True(t, NewRow(1, h, []string{" ", ""}).Blank())
	assert.False(t, NewRow(1, h, []string{" ", "x"}).Blank())
}
