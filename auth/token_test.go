package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmms/models"
)

const testSecret = "test-signing-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("64f1a2b3c4d5e6f7a8b9c0d1", testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d1", subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("64f1a2b3c4d5e6f7a8b9c0d1", testSecret)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := ParseToken(bad, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", bad)
	}
}

func TestParseTokenExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "64f1a2b3c4d5e6f7a8b9c0d1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(expired, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsUnexpectedAlg(t *testing.T) {
	// alg=none with an empty signature must never validate.
	claims := jwt.RegisteredClaims{Subject: "64f1a2b3c4d5e6f7a8b9c0d1"}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(unsigned, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequiresVerification(t *testing.T) {
	assert.True(t, RequiresVerification(models.RoleCustomer))
	assert.False(t, RequiresVerification(models.RoleAdmin))
}
