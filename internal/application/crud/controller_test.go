package crud_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/application/crud"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
	"github.com/jhoicas/backoffice-umkm/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gateway falso
// ──────────────────────────────────────────────────────────────────────────────

// fakeGateway simula el backend: server es lo que devolvería List.
type fakeGateway[T entity.Record] struct {
	mu        sync.Mutex
	server    []T
	listCalls int
	listErr   error
	mutErr    error
	echo      bool
	onCreate  func(T) T
	onUpdate  func(entity.ID, T)
	onDelete  func(entity.ID)
}

func (f *fakeGateway[T]) List(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]T, len(f.server))
	copy(out, f.server)
	return out, nil
}

func (f *fakeGateway[T]) Create(_ context.Context, r T) (repository.MutationResult[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return repository.MutationResult[T]{}, f.mutErr
	}
	if f.onCreate != nil {
		r = f.onCreate(r)
	}
	f.server = append(f.server, r)
	res := repository.MutationResult[T]{Raw: json.RawMessage(`{"message":"ok"}`)}
	if f.echo {
		res.Record = &r
	}
	return res, nil
}

func (f *fakeGateway[T]) Update(_ context.Context, id entity.ID, r T) (repository.MutationResult[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return repository.MutationResult[T]{}, f.mutErr
	}
	if f.onUpdate != nil {
		f.onUpdate(id, r)
	}
	return repository.MutationResult[T]{Raw: json.RawMessage(`{"message":"ok"}`)}, nil
}

func (f *fakeGateway[T]) Delete(_ context.Context, id entity.ID) (repository.MutationResult[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return repository.MutationResult[T]{}, f.mutErr
	}
	if f.onDelete != nil {
		f.onDelete(id)
	}
	return repository.MutationResult[T]{Raw: json.RawMessage(`{"message":"deleted"}`)}, nil
}

func (f *fakeGateway[T]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type inbox struct {
	mu  sync.Mutex
	got []crud.Notification
}

func (i *inbox) Notify(n crud.Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.got = append(i.got, n)
}

func (i *inbox) last() crud.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.got[len(i.got)-1]
}

func rupiah(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func rejected() error {
	return domain.NewRequestError(http.MethodPost, "/x", http.StatusUnprocessableEntity, []byte(`{"message":"The name field is required."}`))
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_OrdenDelServidor(t *testing.T) {
	gw := &fakeGateway[entity.Product]{server: []entity.Product{
		{ProductID: "P2", Name: "Teh"}, {ProductID: "P1", Name: "Kopi"},
	}}
	c := crud.NewController[entity.Product](gw, resource.Product, crud.Config{})
	assert.Equal(t, crud.StateIdle, c.View().State)

	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.Equal(t, crud.StateLoaded, v.State)
	require.Len(t, v.Items, 2)
	assert.Equal(t, entity.ID("P2"), v.Items[0].ProductID, "no se reordena")
}

func TestLoad_Error_EstadoExplicito(t *testing.T) {
	box := &inbox{}
	gw := &fakeGateway[entity.Product]{listErr: &domain.NetworkFailure{Op: "GET /products", Err: assert.AnError}}
	c := crud.NewController[entity.Product](gw, resource.Product, crud.Config{Notifier: box})

	err := c.Load(context.Background())

	require.Error(t, err)
	v := c.View()
	assert.Equal(t, crud.StateLoadError, v.State)
	assert.Empty(t, v.Items)
	assert.ErrorAs(t, v.Err, new(*domain.NetworkFailure))
	assert.Equal(t, crud.LevelError, box.last().Level)
	assert.Equal(t, "Gagal memuat data produk", box.last().Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Política por defecto
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RecargaDesdeElServidor(t *testing.T) {
	box := &inbox{}
	gw := &fakeGateway[entity.Product]{
		server: []entity.Product{{ProductID: "P1", Name: "Kopi", Price: rupiah(15000)}},
		// el servidor asigna id y normaliza el nombre
		onCreate: func(p entity.Product) entity.Product {
			p.ProductID = "P9"
			p.Name = "Teh Manis"
			return p
		},
	}
	c := crud.NewController[entity.Product](gw, resource.Product, crud.Config{Notifier: box})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	require.NoError(t, c.Create(ctx, entity.Product{Name: "teh", Price: rupiah(5000)}))

	v := c.View()
	assert.Equal(t, 2, gw.calls(), "una recarga tras el alta")
	require.Len(t, v.Items, 2)
	assert.Equal(t, entity.ID("P9"), v.Items[1].ProductID)
	assert.Equal(t, "Teh Manis", v.Items[1].Name, "se muestra lo que devuelve List, no el registro local")
	assert.Equal(t, "Produk berhasil ditambahkan", box.last().Message)
}

func TestUpdate_EstadoDesdeRecarga(t *testing.T) {
	gw := &fakeGateway[entity.Order]{server: []entity.Order{
		{OrderID: "O1", CustomerID: "CU1", OrderDate: "2024-05-01", Status: entity.OrderPending},
	}}
	gw.onUpdate = func(id entity.ID, o entity.Order) {
		for i := range gw.server {
			if gw.server[i].OrderID == id {
				gw.server[i].Status = o.Status
			}
		}
	}
	c := crud.NewController[entity.Order](gw, resource.Order, crud.Config{})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	require.NoError(t, c.Update(ctx, "O1", entity.Order{CustomerID: "CU1", OrderDate: "2024-05-01", Status: entity.OrderDone}))

	assert.Equal(t, 2, gw.calls(), "el estado nuevo sale de una lectura fresca")
	assert.Equal(t, entity.OrderDone, c.View().Items[0].Status)
}

func TestDelete_FiltroLocalSinRecarga(t *testing.T) {
	box := &inbox{}
	gw := &fakeGateway[entity.Customer]{server: []entity.Customer{
		{CustomerID: "CU1", Name: "Sari"}, {CustomerID: "CU2", Name: "Andi"}, {CustomerID: "CU3", Name: "Rina"},
	}}
	c := crud.NewController[entity.Customer](gw, resource.Customer, crud.Config{Notifier: box})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))
	before := c.View().Items

	require.NoError(t, c.Delete(ctx, "CU1"))

	v := c.View()
	assert.Equal(t, 1, gw.calls(), "borrar no vuelve a pedir la lista")
	assert.Equal(t, before[1:], v.Items)
	assert.Equal(t, "Customer berhasil dihapus", box.last().Message)
}

func TestMutacionRechazada_ColeccionIntacta(t *testing.T) {
	ctx := context.Background()
	seed := []entity.Category{{CategoryID: "1", ProductID: "P1", Name: "Minuman"}}

	ops := map[string]func(c *crud.Controller[entity.Category]) error{
		"create": func(c *crud.Controller[entity.Category]) error {
			return c.Create(ctx, entity.Category{ProductID: "P1", Name: "Makanan"})
		},
		"update": func(c *crud.Controller[entity.Category]) error {
			return c.Update(ctx, "1", entity.Category{ProductID: "P1", Name: "Snack"})
		},
		"delete": func(c *crud.Controller[entity.Category]) error { return c.Delete(ctx, "1") },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			box := &inbox{}
			gw := &fakeGateway[entity.Category]{server: append([]entity.Category(nil), seed...)}
			c := crud.NewController[entity.Category](gw, resource.Category, crud.Config{Notifier: box})
			require.NoError(t, c.Load(ctx))
			before := c.View().Items
			gw.mutErr = rejected()

			err := op(c)

			require.Error(t, err)
			v := c.View()
			assert.Equal(t, crud.StateMutationError, v.State)
			assert.Equal(t, before, v.Items)
			assert.Equal(t, 1, gw.calls())
			assert.Equal(t, crud.LevelError, box.last().Level)
			assert.Equal(t, 422, domain.StatusOf(box.last().Err))
		})
	}
}

func TestRecargaFallaTrasAlta_AvisoDeExitoYErrorDeCarga(t *testing.T) {
	box := &inbox{}
	gw := &fakeGateway[entity.User]{server: []entity.User{{ID: "1", Name: "Admin"}}}
	c := crud.NewController[entity.User](gw, resource.User, crud.Config{Notifier: box})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	gw.listErr = assert.AnError
	err := c.Create(ctx, entity.User{Name: "Budi", Username: "budi", Email: "b@toko.id", Password: "rahasia"})

	require.Error(t, err)
	v := c.View()
	assert.Equal(t, crud.StateLoadError, v.State)
	assert.True(t, v.Stale)
	assert.Len(t, v.Items, 1, "se conserva la colección anterior")
	require.Len(t, box.got, 2)
	assert.Equal(t, "User berhasil ditambahkan", box.got[0].Message)
	assert.Equal(t, crud.LevelError, box.got[1].Level)
}

func TestMutacionLocal_TrasCargaFallida_YaNoEsObsoleta(t *testing.T) {
	gw := &fakeGateway[entity.Product]{echo: true, server: []entity.Product{
		{ProductID: "P1", Name: "Kopi"}, {ProductID: "P2", Name: "Teh"},
	}}
	c := crud.NewController[entity.Product](gw, resource.Product, crud.Config{Policy: crud.PolicyApplyLocal})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	gw.listErr = assert.AnError
	require.Error(t, c.Load(ctx))
	require.True(t, c.View().Stale)

	require.NoError(t, c.Delete(ctx, "P1"))
	v := c.View()
	assert.Equal(t, crud.StateLoaded, v.State)
	assert.False(t, v.Stale, "borrado local")

	require.Error(t, c.Load(ctx))
	require.True(t, c.View().Stale)

	require.NoError(t, c.Create(ctx, entity.Product{ProductID: "P3", Name: "Gula"}))
	v = c.View()
	assert.Equal(t, crud.StateLoaded, v.State)
	assert.False(t, v.Stale, "alta aplicada en local")
	assert.Len(t, v.Items, 2)
}

func TestUpdateDelete_SinID(t *testing.T) {
	c := crud.NewController[entity.Order](&fakeGateway[entity.Order]{}, resource.Order, crud.Config{})
	assert.ErrorIs(t, c.Update(context.Background(), "", entity.Order{}), domain.ErrInvalidState)
	assert.ErrorIs(t, c.Delete(context.Background(), ""), domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Políticas uniformes
// ──────────────────────────────────────────────────────────────────────────────

func TestPolicyRefetch_RecargaTambienTrasBorrar(t *testing.T) {
	gw := &fakeGateway[entity.OrderItem]{server: []entity.OrderItem{{ID: "1", Quantity: 1}, {ID: "2", Quantity: 3}}}
	gw.onDelete = func(id entity.ID) { gw.server = gw.server[1:] }
	c := crud.NewController[entity.OrderItem](gw, resource.OrderItem, crud.Config{Policy: crud.PolicyRefetch})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	require.NoError(t, c.Delete(ctx, "1"))

	assert.Equal(t, 2, gw.calls())
	assert.Len(t, c.View().Items, 1)
}

func TestPolicyApplyLocal_UsaElRegistroDevuelto(t *testing.T) {
	gw := &fakeGateway[entity.Product]{echo: true, onCreate: func(p entity.Product) entity.Product {
		p.ProductID = "P7"
		return p
	}}
	c := crud.NewController[entity.Product](gw, resource.Product, crud.Config{Policy: crud.PolicyApplyLocal})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	require.NoError(t, c.Create(ctx, entity.Product{Name: "Gula"}))

	assert.Equal(t, 1, gw.calls(), "sin recarga cuando el backend devuelve el registro")
	require.Len(t, c.View().Items, 1)
	assert.Equal(t, entity.ID("P7"), c.View().Items[0].ProductID)
}

func TestPolicyApplyLocal_SinEcoRecarga(t *testing.T) {
	gw := &fakeGateway[entity.Product]{server: []entity.Product{{ProductID: "P1", Name: "Kopi"}}}
	c := crud.NewController[entity.Product](gw, resource.Product, crud.Config{Policy: crud.PolicyApplyLocal})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	require.NoError(t, c.Update(ctx, "P1", entity.Product{Name: "Kopi Susu"}))

	assert.Equal(t, 2, gw.calls())
}

func TestParsePolicy(t *testing.T) {
	p, err := crud.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, crud.PolicyLegacy, p)

	p, err = crud.ParsePolicy("local")
	require.NoError(t, err)
	assert.Equal(t, crud.PolicyApplyLocal, p)

	_, err = crud.ParsePolicy("optimista")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestOperacionesConcurrentes_SinCarreras(t *testing.T) {
	gw := &fakeGateway[entity.Category]{}
	for i := 0; i < 20; i++ {
		gw.server = append(gw.server, entity.Category{CategoryID: entity.ID(strconv.Itoa(i + 1)), Name: "k"})
	}
	c := crud.NewController[entity.Category](gw, resource.Category, crud.Config{})
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		id := entity.ID(strconv.Itoa(i + 1))
		go func() { defer wg.Done(); _ = c.Delete(ctx, id) }()
		go func() { defer wg.Done(); _ = c.Load(ctx) }()
	}
	wg.Wait()

	assert.Contains(t, []crud.State{crud.StateLoaded}, c.View().State)
}
