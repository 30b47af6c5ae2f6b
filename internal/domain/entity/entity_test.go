package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/domain/entity"
)

func TestID_AceptaNumeroYString(t *testing.T) {
	var item entity.OrderItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":12,"order_id":"O1","product_id":"P1","quantity":2,"price":"15000"}`), &item))

	assert.Equal(t, entity.ID("12"), item.Key())
	assert.Equal(t, entity.ID("O1"), item.OrderID)
	assert.True(t, decimal.NewFromInt(15000).Equal(item.Price), "price entre comillas también se acepta")
	assert.True(t, decimal.NewFromInt(30000).Equal(item.Subtotal()))
}

func TestID_Null(t *testing.T) {
	var c entity.Category
	require.NoError(t, json.Unmarshal([]byte(`{"category_id":null,"product_id":"P1","name":"Minuman"}`), &c))
	assert.True(t, c.Key().IsZero())
}

func TestProduct_MarshalPrecioComoNumero(t *testing.T) {
	p := entity.Product{ProductID: "P1", Name: "Kopi", Price: decimal.NewFromInt(15000), Stock: 10, CategoryID: "C1"}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":"P1","name":"Kopi","description":"","price":15000,"stock":10,"category_id":"C1"}`, string(b))
}

func TestUser_PasswordSeOmiteVacio(t *testing.T) {
	b, err := json.Marshal(entity.User{ID: "1", Name: "Budi", Email: "budi@toko.id", Username: "budi"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, entity.OrderStatus("selesai").Valid())
	assert.False(t, entity.OrderStatus("shipped").Valid())
}

func TestDashboardCounts_ClavesDelBackend(t *testing.T) {
	var d entity.DashboardCounts
	require.NoError(t, json.Unmarshal([]byte(`{"users":3,"customers":5,"product":8,"orders":2,"order-item":6,"categories":4}`), &d))

	assert.Equal(t, entity.DashboardCounts{Users: 3, Customers: 5, Products: 8, Orders: 2, OrderItems: 6, Categories: 4}, d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":3,"customers":5,"product":8,"orders":2,"order-item":6,"categories":4}`, string(out))
}

func TestDashboardCounts_VariantesPlurales(t *testing.T) {
	var d entity.DashboardCounts
	require.NoError(t, json.Unmarshal([]byte(`{"products":8,"order_items":6}`), &d))
	assert.Equal(t, 8, d.Products)
	assert.Equal(t, 6, d.OrderItems)
}
