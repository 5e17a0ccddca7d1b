package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func TestGenerateYParse(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "admin", "salon-pos", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", role)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "staff", "salon-pos", 60)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "staff", "salon-pos", 60)
	require.NoError(t, err)

	_, _, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "staff", "salon-pos", -5)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_TokenBasura(t *testing.T) {
	_, _, err := Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}

func TestParse_RechazaMetodoDeFirmaNoHMAC(t *testing.T) {
	// Token firmado con "none": debe rechazarse aunque los claims sean válidos.
	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "user-1",
		Role:   "admin",
	}
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, token)
	assert.Error(t, err)
}
