package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/backoffice-umkm/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "backoffice-test"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "7", "admin", testIssuer, "jti-1", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "7", "admin", testIssuer, "jti-2", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "7", "admin", testIssuer, "jti-3", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "7", "admin", testIssuer, "jti-4", 60)
	assert.Error(t, err)
}

func TestPeekExpiry(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "7", "admin", testIssuer, "jti-5", 30)
	require.NoError(t, err)

	exp, ok := pkgjwt.PeekExpiry(tok)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, time.Minute)

	_, ok = pkgjwt.PeekExpiry("1|laravel-sanctum-token-opaco")
	assert.False(t, ok, "un token opaco no tiene expiración legible")
}
