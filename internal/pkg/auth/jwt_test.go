package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService(lifetime time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		SessionLifetime: lifetime,
		TokenIssuer:     "prepschool.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, err := svc.GenerateToken(42, "student@oakhavenprep.edu", UserTypeStudent, "")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "student@oakhavenprep.edu", claims.Email)
	assert.Equal(t, UserTypeStudent, claims.UserType)
	assert.Empty(t, claims.Role)
}

func TestStaffTokenCarriesRole(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, err := svc.GenerateToken(7, "head@oakhavenprep.edu", UserTypeStaff, "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, UserTypeStaff, claims.UserType)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Minute)

	token, err := svc.GenerateToken(1, "a@b.c", UserTypeStudent, "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := testJWTService(time.Hour).GenerateToken(1, "a@b.c", UserTypeStaff, "staff")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", SessionLifetime: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := testJWTService(time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("abc"))
	assert.Equal(t, "", ExtractBearerToken(""))
}
