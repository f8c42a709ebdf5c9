package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/keyfold/keyfold/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewClaims("ada@example.com", "admin", "keyfold", 30*time.Minute, now)

	require.Equal(t, "ada@example.com", c.Subject)
	require.Equal(t, "admin", c.Role)
	require.Equal(t, "keyfold", c.Issuer)
	require.Equal(t, now.Unix(), c.IssuedAt.Unix())
	require.Equal(t, now.Add(30*time.Minute).Unix(), c.ExpiresAt.Unix())
	require.NotEmpty(t, c.ID)
}

func TestNewJTI_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		jti := jwtx.NewJTI()
		require.NotEmpty(t, jti)
		_, dup := seen[jti]
		require.False(t, dup)
		seen[jti] = struct{}{}
	}
}

func TestValidateIssuer(t *testing.T) {
	c := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "keyfold"}}

	require.NoError(t, c.ValidateIssuer("keyfold"))
	require.NoError(t, c.ValidateIssuer(""), "empty expectation enforces nothing")
	require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("live token", func(t *testing.T) {
		c := jwtx.NewClaims("s", "user", "", time.Hour, now)
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		c := jwtx.NewClaims("s", "user", "", time.Hour, now.Add(-2*time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := jwtx.NewClaims("s", "user", "", time.Hour, now.Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("no temporal claims", func(t *testing.T) {
		var c jwtx.Claims
		require.NoError(t, c.ValidateExpiry())
	})
}
