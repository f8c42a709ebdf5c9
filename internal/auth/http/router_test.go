package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	authhttp "github.com/keyfold/keyfold/internal/auth/http"
	"github.com/keyfold/keyfold/internal/auth/service"
	"github.com/keyfold/keyfold/internal/auth/store/drivers/sqlite"
	"github.com/keyfold/keyfold/pkg/authapi"
	"github.com/keyfold/keyfold/pkg/cryptox"
	"github.com/keyfold/keyfold/pkg/jwtx"
	"github.com/keyfold/keyfold/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "keyfold-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *authapi.Client {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, "keyfold-test")
	require.NoError(t, err)

	tokens := &service.TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "keyfold-test",
		TTL:      time.Hour,
	}
	auth := &service.AuthService{Store: st, Tokens: tokens}
	users := &service.UserService{Store: st}

	logger := slogx.New(slogx.Config{
		Service: "keyfold-test",
		Level:   "error",
		Format:  "text",
	})

	router := authhttp.NewRouter("test", st, logger)
	router.AuthService = auth
	router.TokenService = tokens
	router.UserService = users
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return authapi.NewClient(srv.URL)
}

func adaRegistration() authapi.RegisterRequest {
	return authapi.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret1",
	}
}

func TestEndToEnd_RegisterAuthenticateHello(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, adaRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)

	// The registration token already grants access to protected routes.
	greeting, err := client.Hello(ctx, reg.Token)
	require.NoError(t, err)
	require.Equal(t, "Hello, secured world!", greeting)

	// A later authentication issues a fresh, equally usable token.
	auth, err := client.Authenticate(ctx, authapi.AuthenticateRequest{
		Email:    "ada@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)

	greeting, err = client.Hello(ctx, auth.Token)
	require.NoError(t, err)
	require.Equal(t, "Hello, secured world!", greeting)

	me, err := client.Me(ctx, auth.Token)
	require.NoError(t, err)
	require.Equal(t, "Ada", me.FirstName)
	require.Equal(t, "Lovelace", me.LastName)
	require.Equal(t, "ada@example.com", me.Email)
	require.Equal(t, "user", me.Role)
	require.NotEmpty(t, me.ID)
	require.NotEmpty(t, me.CreatedAt)
}

func TestEndToEnd_ProtectedRouteWithoutToken(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Hello(ctx, "")
	require.Error(t, err)

	_, err = client.Me(ctx, "")
	require.Error(t, err)
}

func TestEndToEnd_ProtectedRouteWithGarbageToken(t *testing.T) {
	client := newTestServer(t)

	_, err := client.Hello(context.Background(), "not-a-jwt")
	require.Error(t, err)
}

func TestEndToEnd_RegisterValidation(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	bad := adaRegistration()
	bad.Email = "not-an-email"
	bad.Password = "short"

	_, err := client.Register(ctx, bad)
	require.Error(t, err)

	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "validation_error", apiErr.Code)
}

func TestEndToEnd_RegisterDuplicateEmail(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, adaRegistration())
	require.NoError(t, err)

	_, err = client.Register(ctx, adaRegistration())
	require.Error(t, err)

	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, "email_taken", apiErr.Code)
}

func TestEndToEnd_AuthenticateWrongPassword(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, adaRegistration())
	require.NoError(t, err)

	_, err = client.Authenticate(ctx, authapi.AuthenticateRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)

	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid_credentials", apiErr.Code)
}

func TestEndToEnd_AuthenticateUnknownEmail(t *testing.T) {
	client := newTestServer(t)

	// Unknown email is indistinguishable from a wrong password.
	_, err := client.Authenticate(context.Background(), authapi.AuthenticateRequest{
		Email:    "nobody@example.com",
		Password: "secret1",
	})
	require.Error(t, err)

	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid_credentials", apiErr.Code)
}

func TestEndToEnd_HealthEndpoints(t *testing.T) {
	client := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		res, err := http.Get(client.BaseURL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		res.Body.Close()
	}
}

func TestEndToEnd_MalformedBody(t *testing.T) {
	client := newTestServer(t)

	res, err := http.Post(
		client.BaseURL+"/api/v1/auth/register",
		"application/json",
		nil,
	)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}
