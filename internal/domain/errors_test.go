package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-umkm/internal/domain"
)

func TestNewRequestError_ExtraeMessage(t *testing.T) {
	e := domain.NewRequestError(http.MethodPost, "/login", http.StatusUnauthorized, []byte(`{"message":"Username atau password salah"}`))

	assert.Equal(t, 401, e.Status)
	assert.Equal(t, "Username atau password salah", e.Message)
	assert.JSONEq(t, `{"message":"Username atau password salah"}`, string(e.Body))
	assert.Contains(t, e.Error(), "HTTP 401")
}

func TestNewRequestError_CuerpoNoJSON(t *testing.T) {
	e := domain.NewRequestError(http.MethodGet, "/products", http.StatusBadGateway, []byte("<html>bad gateway</html>"))

	assert.Empty(t, e.Message)
	assert.JSONEq(t, `"<html>bad gateway</html>"`, string(e.Body), "el cuerpo se conserva como string JSON")
}

func TestIsUnauthorized_AtraviesaWrapping(t *testing.T) {
	base := domain.NewRequestError(http.MethodGet, "/user", http.StatusUnauthorized, nil)
	wrapped := fmt.Errorf("listar usuarios: %w", base)

	assert.True(t, domain.IsUnauthorized(wrapped))
	assert.Equal(t, 401, domain.StatusOf(wrapped))
	assert.False(t, domain.IsUnauthorized(errors.New("otro")))
}

func TestNetworkFailure_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("x: %w", &domain.NetworkFailure{Op: "GET /orders", Err: cause})

	var nf *domain.NetworkFailure
	require.ErrorAs(t, err, &nf)
	assert.ErrorIs(t, err, cause)
}

func TestValidationFailure_EsErrInvalidInput(t *testing.T) {
	vf := &domain.ValidationFailure{Message: "Nama dan Produk wajib diisi.", Fields: map[string]string{"name": "wajib", "product_id": "wajib"}}

	assert.ErrorIs(t, vf, domain.ErrInvalidInput)
	assert.Equal(t, "Nama dan Produk wajib diisi. (name, product_id)", vf.Error())
	assert.Equal(t, "Nama dan Produk wajib diisi.", domain.UserMessage(vf))
}
