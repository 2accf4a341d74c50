package services

import (
	"testing"
	"time"

	"client_case_tracker/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		SessionSecret: "test-secret-that-is-long-enough-123456",
		Admin:         config.AdminCredentials{Username: "admin", Password: "correct horse"},
	}
}

func TestLogin(t *testing.T) {
	auth := NewAuthenticator(testAuthConfig())

	t.Run("Valid credentials", func(t *testing.T) {
		token, expiresAt, err := auth.Login("admin", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(SessionDuration), expiresAt, 5*time.Second)
		assert.True(t, auth.Verify(token))
	})

	t.Run("Wrong password", func(t *testing.T) {
		token, _, err := auth.Login("admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("Wrong username", func(t *testing.T) {
		_, _, err := auth.Login("root", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unset password never matches", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.Admin.Password = ""
		_, _, err := NewAuthenticator(cfg).Login("admin", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestParseToken(t *testing.T) {
	cfg := testAuthConfig()
	auth := NewAuthenticator(cfg)

	token, _, err := auth.IssueToken()
	require.NoError(t, err)

	t.Run("Claims", func(t *testing.T) {
		claims, err := auth.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, AdminRole, claims.Role)
		assert.Equal(t, TokenIssuer, claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Expired", func(t *testing.T) {
		later := NewAuthenticator(cfg)
		later.now = func() time.Time { return time.Now().Add(SessionDuration + time.Minute) }
		assert.False(t, later.Verify(token))
	})

	t.Run("Other secret", func(t *testing.T) {
		other := testAuthConfig()
		other.SessionSecret = "a-completely-different-secret-value-999"
		assert.False(t, NewAuthenticator(other).Verify(token))
	})

	t.Run("Tampered", func(t *testing.T) {
		assert.False(t, auth.Verify(token+"x"))
		assert.False(t, auth.Verify(""))
		assert.False(t, auth.Verify("not.a.token"))
	})

	t.Run("Unsigned algorithm rejected", func(t *testing.T) {
		claims := SessionClaims{
			Username: "admin",
			Role:     AdminRole,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		assert.False(t, auth.Verify(unsigned))
	})

	t.Run("Missing expiry rejected", func(t *testing.T) {
		claims := SessionClaims{
			Username:         "admin",
			Role:             AdminRole,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: TokenIssuer},
		}
		noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SessionSecret))
		require.NoError(t, err)
		assert.False(t, auth.Verify(noExp))
	})

	t.Run("Token for another user rejected", func(t *testing.T) {
		renamed := testAuthConfig()
		renamed.Admin.Username = "someone-else"
		assert.False(t, NewAuthenticator(renamed).Verify(token))
	})
}
