package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/keyfold/keyfold/internal/auth/service"
	"github.com/keyfold/keyfold/internal/auth/store"
	"github.com/keyfold/keyfold/internal/auth/store/drivers/sqlite"
	"github.com/keyfold/keyfold/pkg/cryptox"
	"github.com/keyfold/keyfold/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "keyfold-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newAuthService(t *testing.T) (*service.AuthService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	auth := &service.AuthService{
		Store:  st,
		Tokens: newTokenService(t, time.Hour),
	}
	return auth, st
}

func adaParams() service.RegisterParams {
	return service.RegisterParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	auth, st := newAuthService(t)
	ctx := context.Background()

	token, err := auth.Register(ctx, adaParams())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The issued token's subject decodes to the registered email.
	subject, err := auth.Tokens.ExtractSubject(token)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", subject)

	// The persisted record carries a hash, never the plaintext.
	user, err := st.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ada", user.FirstName)
	require.Equal(t, "user", user.Role.String())
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("secret1", user.PasswordHash))
	require.True(t, auth.Tokens.IsValid(token, user))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, st := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, adaParams())
	require.NoError(t, err)

	dup := adaParams()
	dup.FirstName = "Impostor"
	token, err := auth.Register(ctx, dup)
	require.ErrorIs(t, err, service.ErrEmailTaken)
	require.Empty(t, token, "no token is issued on conflict")

	// The existing record is untouched.
	user, err := st.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "Ada", user.FirstName)
}

func TestAuthService_Authenticate(t *testing.T) {
	auth, st := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, adaParams())
	require.NoError(t, err)

	token, err := auth.Authenticate(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := st.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.True(t, auth.Tokens.IsValid(token, user))
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, adaParams())
	require.NoError(t, err)

	token, err := auth.Authenticate(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	require.Empty(t, token)
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	// Unknown email and wrong password produce the same error.
	token, err := auth.Authenticate(context.Background(), "nobody@example.com", "secret1")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	require.Empty(t, token)
}

func TestAuthService_ResolveToken(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	token, err := auth.Register(ctx, adaParams())
	require.NoError(t, err)

	id, err := auth.ResolveToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", id.Email)
	require.Equal(t, "user", id.Role)
	require.NotEmpty(t, id.UserID)
}

func TestAuthService_ResolveToken_Failures(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	t.Run("malformed token", func(t *testing.T) {
		_, err := auth.ResolveToken(ctx, "garbage")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("token for deleted user", func(t *testing.T) {
		// Valid signature but the subject no longer resolves to a record.
		raw, err := auth.Tokens.Generate(testUser("ghost@example.com"))
		require.NoError(t, err)

		_, err = auth.ResolveToken(ctx, raw)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := auth.Register(ctx, adaParams())
		require.NoError(t, err)

		expired := &service.AuthService{
			Store:  auth.Store,
			Tokens: newTokenService(t, -time.Minute),
		}
		raw, err := expired.Authenticate(ctx, "ada@example.com", "secret1")
		require.NoError(t, err)

		_, err = expired.ResolveToken(ctx, raw)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}
