package resource_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
)

func TestDescriptors_RutasYVerbos(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		method string
	}{
		{"users", "user", http.MethodPatch},
		{"customers", "customers", http.MethodPatch},
		{"products", "products", http.MethodPatch},
		{"orders", "orders", http.MethodPatch},
		{"order-items", "order-items", http.MethodPut},
		{"categories", "categories", http.MethodPut},
	}
	for _, tc := range cases {
		d, err := resource.Lookup(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.path, d.Path, tc.name)
		assert.Equal(t, tc.method, d.UpdateMethod, tc.name)
		assert.NotEmpty(t, d.Messages.Created, tc.name)
		assert.NotEmpty(t, d.Form.Fields, tc.name)
	}
}

func TestLookup_Desconocido(t *testing.T) {
	_, err := resource.Lookup("invoices")
	assert.Error(t, err)
}

func TestAll_OrdenDelMenu(t *testing.T) {
	all := resource.All()
	require.Len(t, all, 6)
	assert.Equal(t, resource.Users, all[0].Name)
	assert.Equal(t, resource.Categories, all[5].Name)
	assert.Len(t, resource.Names(), 6)
}

func TestDeletePrompt(t *testing.T) {
	assert.Equal(t, "Yakin ingin menghapus item pesanan ini?", resource.OrderItem.DeletePrompt())
	assert.Equal(t, "Yakin ingin menghapus produk ini?", resource.Product.DeletePrompt())
}
