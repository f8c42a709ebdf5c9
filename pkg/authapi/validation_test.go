package authapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret1",
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		require.Nil(t, validRegister().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
		reason string
	}{
		{"blank first name", func(r *RegisterRequest) { r.FirstName = "  " }, "firstName", "required"},
		{"blank last name", func(r *RegisterRequest) { r.LastName = "" }, "lastName", "required"},
		{"overlong first name", func(r *RegisterRequest) { r.FirstName = strings.Repeat("a", 101) }, "firstName", "too long (max 100)"},
		{"blank email", func(r *RegisterRequest) { r.Email = "" }, "email", "required"},
		{"email without at", func(r *RegisterRequest) { r.Email = "ada.example.com" }, "email", "must be a valid email address"},
		{"email without domain dot", func(r *RegisterRequest) { r.Email = "ada@example" }, "email", "must be a valid email address"},
		{"email with spaces", func(r *RegisterRequest) { r.Email = "ada lovelace@example.com" }, "email", "must be a valid email address"},
		{"blank password", func(r *RegisterRequest) { r.Password = "" }, "password", "required"},
		{"short password", func(r *RegisterRequest) { r.Password = "five5" }, "password", "too short (min 6)"},
		{"overlong password", func(r *RegisterRequest) { r.Password = strings.Repeat("x", 129) }, "password", "too long (max 128)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)

			errs := req.Validate()
			require.NotNil(t, errs)
			require.Equal(t, tt.reason, errs[tt.field])
		})
	}
}

func TestRegisterRequest_Validate_MultipleViolations(t *testing.T) {
	errs := RegisterRequest{}.Validate()
	require.Len(t, errs, 4)
	require.Contains(t, errs, "firstName")
	require.Contains(t, errs, "lastName")
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
}

func TestAuthenticateRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := AuthenticateRequest{Email: "ada@example.com", Password: "secret1"}
		require.Nil(t, req.Validate())
	})

	t.Run("bad email and short password", func(t *testing.T) {
		errs := AuthenticateRequest{Email: "nope", Password: "abc"}.Validate()
		require.Equal(t, "must be a valid email address", errs["email"])
		require.Equal(t, "too short (min 6)", errs["password"])
	})
}

func TestPasswordExactlySixChars(t *testing.T) {
	req := validRegister()
	req.Password = "sixsix"
	require.Nil(t, req.Validate())
}
