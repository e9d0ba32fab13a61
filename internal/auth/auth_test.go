package auth

import (
	"testing"
	"time"

	"homefinder-listings/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	details, err := issuer.Generate(&models.User{ID: 7, Name: "Admin User", Email: "admin@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", details.TokenType)
	assert.Equal(t, int64(3600), details.ExpiresIn)

	claims, err := issuer.Validate(details.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestValidateRejects(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	details, err := issuer.Generate(&models.User{ID: 1})
	require.NoError(t, err)

	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	_, err = other.Validate(details.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Validate(details.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRequiresUser(t *testing.T) {
	issuer, err := NewTokenIssuer("s", 0)
	require.NoError(t, err)
	_, err = issuer.Generate(&models.User{})
	assert.Error(t, err)

	_, err = NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.True(t, CheckPassword(hash, "password"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
