package form_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/application/form"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/domain"
	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type recorder[T entity.Record] struct {
	calls []form.Submission[T]
}

func (r *recorder[T]) submit(s form.Submission[T]) { r.calls = append(r.calls, s) }

func fill[T entity.Record](t *testing.T, m *form.Modal[T], values map[string]string) {
	t.Helper()
	for k, v := range values {
		require.NoError(t, m.Set(k, v), "campo %s", k)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CampoObligatorioEnBlanco_NoLlamaCallback(t *testing.T) {
	rec := &recorder[entity.Category]{}
	m := form.NewModal[entity.Category](resource.Category.Form, rec.submit)
	m.OpenCreate()
	fill(t, m, map[string]string{"name": "   ", "product_id": "P1"})

	err := m.Submit()

	var vf *domain.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Contains(t, vf.Fields, "name")
	assert.Empty(t, rec.calls, "la validación fallida nunca llega al controlador")
	assert.True(t, m.IsOpen(), "el modal sigue abierto")
	assert.Equal(t, "Nama dan Produk wajib diisi.", m.Alert())
}

func TestSubmit_OrderItemCantidadCero_Rechazada(t *testing.T) {
	rec := &recorder[entity.OrderItem]{}
	m := form.NewModal[entity.OrderItem](resource.OrderItem.Form, rec.submit)
	m.OpenCreate()
	fill(t, m, map[string]string{"order_id": "O1", "product_id": "P1", "quantity": "0", "price": "15000"})

	err := m.Submit()

	require.Error(t, err)
	assert.Empty(t, rec.calls)
	assert.Equal(t, "Mohon isi semua field dengan benar.", m.Alert())
}

func TestSubmit_PrecioNegativo_Rechazado(t *testing.T) {
	rec := &recorder[entity.OrderItem]{}
	m := form.NewModal[entity.OrderItem](resource.OrderItem.Form, rec.submit)
	m.OpenCreate()
	fill(t, m, map[string]string{"order_id": "O1", "product_id": "P1", "quantity": "1", "price": "-1"})

	assert.Error(t, m.Submit())
	assert.Empty(t, rec.calls)
}

func TestSubmit_EstadoFueraDelEnum(t *testing.T) {
	rec := &recorder[entity.Order]{}
	m := form.NewModal[entity.Order](resource.Order.Form, rec.submit)
	m.OpenCreate()
	fill(t, m, map[string]string{"customer_id": "CU1", "order_date": "2024-05-01", "status": "shipped"})

	err := m.Submit()
	var vf *domain.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Contains(t, vf.Fields, "status")
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción del registro
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_Valido_LlamaCallbackYCierra(t *testing.T) {
	rec := &recorder[entity.Product]{}
	m := form.NewModal[entity.Product](resource.Product.Form, rec.submit)
	m.OpenCreate()
	fill(t, m, map[string]string{"name": "Kopi", "price": "15000", "stock": "10", "category_id": "C1"})

	require.NoError(t, m.Submit())

	require.Len(t, rec.calls, 1)
	got := rec.calls[0]
	assert.Equal(t, form.ModeCreate, got.Mode)
	assert.True(t, got.ID.IsZero())
	assert.Equal(t, "Kopi", got.Record.Name)
	assert.True(t, decimal.NewFromInt(15000).Equal(got.Record.Price))
	assert.Equal(t, 10, got.Record.Stock)
	assert.Equal(t, entity.ID("C1"), got.Record.CategoryID)
	assert.False(t, m.IsOpen())
	assert.Equal(t, form.OutcomeSubmitted, m.Outcome())
}

func TestSubmit_NumeroNoValidoSeConvierteEnCero(t *testing.T) {
	rec := &recorder[entity.Product]{}
	m := form.NewModal[entity.Product](resource.Product.Form, rec.submit)
	m.OpenCreate()
	fill(t, m, map[string]string{"name": "Teh", "price": "abc", "stock": "", "category_id": "C1"})

	require.NoError(t, m.Submit())
	require.Len(t, rec.calls, 1)
	assert.True(t, rec.calls[0].Record.Price.IsZero())
	assert.Equal(t, 0, rec.calls[0].Record.Stock)
}

func TestOpenEdit_PasswordNuncaPrecargado(t *testing.T) {
	rec := &recorder[entity.User]{}
	m := form.NewModal[entity.User](resource.User.Form, rec.submit)
	require.NoError(t, m.OpenEdit(entity.User{ID: "7", Name: "Budi", Username: "budi", Email: "budi@toko.id", Password: "rahasia"}))

	assert.Equal(t, "Budi", m.Value("name"))
	assert.Empty(t, m.Value("password"))

	require.NoError(t, m.Submit(), "en edición el password es opcional")
	require.Len(t, rec.calls, 1)
	assert.Equal(t, form.ModeEdit, rec.calls[0].Mode)
	assert.Equal(t, entity.ID("7"), rec.calls[0].ID)
	assert.Empty(t, rec.calls[0].Record.Password, "password en blanco no se envía")
}

func TestUser_PasswordObligatorioAlCrear(t *testing.T) {
	rec := &recorder[entity.User]{}
	m := form.NewModal[entity.User](resource.User.Form, rec.submit)
	m.OpenCreate()
	fill(t, m, map[string]string{"name": "Budi", "username": "budi", "email": "budi@toko.id"})

	assert.Error(t, m.Submit())
	assert.Empty(t, rec.calls)
}

func TestCustomer_PasswordSoloAlCrear(t *testing.T) {
	rec := &recorder[entity.Customer]{}
	m := form.NewModal[entity.Customer](resource.Customer.Form, rec.submit)
	require.NoError(t, m.OpenEdit(entity.Customer{CustomerID: "CU1", Name: "Sari", Email: "sari@mail.id", Phone: "0812", Address: "Bandung"}))

	for _, f := range m.Fields() {
		assert.NotEqual(t, "password", f.Key, "password oculto en edición")
	}
	assert.ErrorIs(t, m.Set("password", "x"), domain.ErrInvalidInput)
	require.NoError(t, m.Submit())
	assert.Empty(t, rec.calls[0].Record.Password)
}

func TestOpenEdit_PrecargaNumeros(t *testing.T) {
	m := form.NewModal[entity.OrderItem](resource.OrderItem.Form, nil)
	require.NoError(t, m.OpenEdit(entity.OrderItem{ID: "3", OrderID: "O1", ProductID: "P1", Quantity: 2, Price: decimal.NewFromInt(15000)}))

	assert.Equal(t, "2", m.Value("quantity"))
	assert.Equal(t, "15000", m.Value("price"))
	assert.Equal(t, "Edit Item Pesanan", m.Title())
}

func TestOpenEdit_SinID_Error(t *testing.T) {
	m := form.NewModal[entity.Order](resource.Order.Form, nil)
	assert.ErrorIs(t, m.OpenEdit(entity.Order{}), domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_CierraSinEnviar(t *testing.T) {
	rec := &recorder[entity.Category]{}
	m := form.NewModal[entity.Category](resource.Category.Form, rec.submit)
	m.OpenCreate()
	m.Cancel()

	assert.False(t, m.IsOpen())
	assert.Equal(t, form.OutcomeCancelled, m.Outcome())
	assert.Empty(t, rec.calls)
}

func TestModalCerrado_OperacionesInvalidas(t *testing.T) {
	m := form.NewModal[entity.Category](resource.Category.Form, nil)

	assert.ErrorIs(t, m.Set("name", "x"), domain.ErrInvalidState)
	assert.ErrorIs(t, m.Submit(), domain.ErrInvalidState)
}
