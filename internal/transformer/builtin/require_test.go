package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productseed/internal/record"
)

func rows(h record.Header, cells ...[]string) []record.Row {
	out := make([]record.Row, len(cells))
	for i, c := range cells {
		out[i] = record.NewRow(i+2, h, c)
	}
	return out
}

func TestRequire_Apply(t *testing.T) {
	t.Parallel()

	h := record.NewHeader([]string{"ID", "Nombre", "Cantidad"})
	in := rows(h,
		[]string{"1", "Gasa", "10"},
		[]string{"2", "", "10"},
		[]string{"", "Venda", "1"},
		[]string{"4", "   "},
		[]string{"5"},
		[]string{"6", "Suero"},
	)

	kept, dropped := Require{Fields: []string{"ID", "Nombre"}}.Apply(in)
	require.Len(t, kept, 2)
	assert.Equal(t, "1", kept[0].Value("ID"))
	assert.Equal(t, "6", kept[1].Value("ID"))

	require.Len(t, dropped, 4)
	lines := []int{dropped[0].Line, dropped[1].Line, dropped[2].Line, dropped[3].Line}
	assert.Equal(t, []int{3, 4, 5, 6}, lines)
}

func TestRequire_MissingHeaderDropsEverything(t *testing.T) {
	t.Parallel()

	h := record.NewHeader([]string{"ID"})
	kept, dropped := Require{Fields: []string{"ID", "Nombre"}}.Apply(rows(h, []string{"1"}))
	assert.Empty(t, kept)
	assert.Len(t, dropped, 1)
}

func TestDeDup_Duplicates(t *testing.T) {
	t.Parallel()

	h := record.NewHeader([]string{"ID", "Nombre"})
	in := rows(h,
		[]string{"1", "Gasa"},
		[]string{"2", "Venda"},
		[]string{" 1 ", "Gasa bis"},
		[]string{"", "Sin id"},
		[]string{"2", "Venda bis"},
	)

	got := DeDup{Keys: []string{"ID"}}.Duplicates(in)
	require.Len(t, got, 2)
	assert.Equal(t, Issue{Reason: ReasonDuplicateID, Line: 4, ID: "1", Column: "ID", Raw: "1"}, got[0])
	assert.Equal(t, 6, got[1].Line)

	assert.Nil(t, DeDup{}.Duplicates(in))
}
