package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	secret := []byte("catalog-test-secret")

	token, err := GenerateToken(secret, "api-gateway", "ops@example.com", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	require.Equal(t, "api-gateway", claims.Service)
	require.Equal(t, "ops@example.com", claims.Actor)
}

func TestValidateRejects(t *testing.T) {
	secret := []byte("catalog-test-secret")

	token, err := GenerateToken(secret, "api-gateway", "", time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken([]byte("other-secret"), token)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateToken(secret, "api-gateway", "", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(secret, expired)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken(secret, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
