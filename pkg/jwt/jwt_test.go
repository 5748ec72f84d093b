package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/bountygroup/drinks-inventory-api/pkg/jwt"
)

const (
	testSecret = "secreto-de-pruebas"
	testIssuer = "drinks-inventory-test"
)

func TestGenerateYParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "mesero", "staff", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, roleName, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "mesero", username)
	assert.Equal(t, "staff", roleName)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "mesero", "staff", testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "un token firmado con otro secreto debe rechazarse")
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "user-1", "mesero", "staff", testIssuer, -5)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "mesero", "staff", testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(testSecret, "no.es.jwt")
	assert.Error(t, err)
}
