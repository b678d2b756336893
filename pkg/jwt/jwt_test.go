package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(secret, 10, 2, "Creador", "test", 60)
	require.NoError(t, err)

	claims, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(10), claims.UserID)
	assert.Equal(t, int64(2), claims.CompanyID)
	assert.Equal(t, "Creador", claims.Role)
	assert.Equal(t, "10", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(secret, 1, 1, "Admin", "test", -1)
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(secret, 1, 1, "Admin", "test", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", 1, 1, "Admin", "test", 60)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
