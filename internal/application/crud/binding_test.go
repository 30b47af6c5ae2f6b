package crud_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Binding
// ──────────────────────────────────────────────────────────────────────────────

func productBinding(gw *fakeGateway[entity.Product]) crud.Binding {
	return crud.Bind(crud.NewController[entity.Product](gw, resource.Product, crud.Config{}))
}

func TestBinding_SnapshotFormateaImportes(t *testing.T) {
	gw := &fakeGateway[entity.Product]{server: []entity.Product{
		{ProductID: "P1", Name: "Kopi", Price: rupiah(15000), Stock: 3, CategoryID: "1"},
	}}
	b := productBinding(gw)
	require.NoError(t, b.Load(context.Background()))

	snap := b.Snapshot()
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, entity.ID("P1"), snap.Rows[0].ID)
	assert.Equal(t, []string{"Kopi", "", "Rp15.000", "3", "1"}, snap.Rows[0].Cells)
	assert.Equal(t, crud.StateLoaded, snap.State)
}

func TestBinding_SubmitInvalidoNoDevuelveMutacion(t *testing.T) {
	b := productBinding(&fakeGateway[entity.Product]{})
	b.Form().OpenCreate()

	mut, err := b.Submit()
	assert.Nil(t, mut)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, b.Form().IsOpen(), "el modal sigue abierto")
	assert.NotEmpty(t, b.Form().Alert())
}

func TestBinding_SubmitAltaEjecutaCreate(t *testing.T) {
	gw := &fakeGateway[entity.Product]{onCreate: func(p entity.Product) entity.Product {
		p.ProductID = "P9"
		return p
	}}
	b := productBinding(gw)
	b.Form().OpenCreate()
	require.NoError(t, b.Form().Set("name", "Teh"))
	require.NoError(t, b.Form().Set("price", "5000"))
	require.NoError(t, b.Form().Set("category_id", "2"))

	mut, err := b.Submit()
	require.NoError(t, err)
	require.NotNil(t, mut)
	assert.False(t, b.Form().IsOpen())

	require.NoError(t, mut(context.Background()))
	rows := b.Snapshot().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, entity.ID("P9"), rows[0].ID)
	assert.Equal(t, 1, gw.calls(), "alta recarga la lista")
}

func TestBinding_EditarExistente(t *testing.T) {
	var updated entity.Product
	gw := &fakeGateway[entity.Product]{
		server:   []entity.Product{{ProductID: "P1", Name: "Kopi", CategoryID: "1"}},
		onUpdate: func(_ entity.ID, p entity.Product) { updated = p },
	}
	b := productBinding(gw)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.OpenEdit("P1"))
	assert.Equal(t, "Kopi", b.Form().Value("name"))
	require.NoError(t, b.Form().Set("name", "Kopi Susu"))
	mut, err := b.Submit()
	require.NoError(t, err)
	require.NoError(t, mut(context.Background()))
	assert.Equal(t, "Kopi Susu", updated.Name)
}

func TestBinding_EditarInexistente(t *testing.T) {
	b := productBinding(&fakeGateway[entity.Product]{})
	assert.ErrorIs(t, b.OpenEdit("nope"), domain.ErrNotFound)
}

func TestBinding_OptionsUsaNombre(t *testing.T) {
	gw := &fakeGateway[entity.Order]{server: []entity.Order{{OrderID: "O1", OrderDate: "2024-05-01"}}}
	b := crud.Bind(crud.NewController[entity.Order](gw, resource.Order, crud.Config{}))

	opts, err := b.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []crud.Option{{Value: "O1", Label: "O1 (2024-05-01)"}}, opts)
	assert.Equal(t, crud.StateIdle, b.Snapshot().State, "Options no toca el estado")
}
