package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
)

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"name=Kopi", " price =15000", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Kopi", "price": "15000", "note": "a=b"}, got)

	_, err = parseSets([]string{"sinvalor"})
	assert.Error(t, err)
	_, err = parseSets([]string{"=x"})
	assert.Error(t, err)
}

func TestTabla_NumeracionDesdeUno(t *testing.T) {
	snap := crud.Snapshot{Rows: []crud.Row{
		{ID: "c1", Cells: []string{"Makanan"}},
		{ID: "c2", Cells: []string{"Minuman"}},
	}}
	rows := tableRows(snap)
	assert.Equal(t, [][]string{{"1", "c1", "Makanan"}, {"2", "c2", "Minuman"}}, rows)

	h := tableHeaders(resource.Category)
	assert.Equal(t, []string{"No", "ID"}, h[:2])
	assert.Len(t, h, 2+len(resource.Category.Columns))
}

func TestComandos_Registrados(t *testing.T) {
	want := []string{"login", "logout", "whoami", "register", "list", "create", "update", "delete", "counts", "export", "tui", "sandbox"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}
