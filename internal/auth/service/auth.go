package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyfold/keyfold/internal/auth/domain"
	"github.com/keyfold/keyfold/internal/auth/store"
	"github.com/keyfold/keyfold/pkg/cryptox"
	"github.com/keyfold/keyfold/pkg/httpx"
	"github.com/keyfold/keyfold/pkg/idx"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; the two are not distinguished so responses can't be used
	// to enumerate registered addresses.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("service: email already registered")
)

// RegisterParams are the already-validated fields for a new account. Field
// validation happens at the HTTP boundary before the orchestrator runs.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService composes the credential hasher, the token service and the user
// store into the register/authenticate use cases, and resolves bearer tokens
// for the access gate.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Register creates a user with the default role, the password replaced by
// its hash, persists it, and returns a freshly generated token.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (string, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.Tokens.Generate(user)
}

// Authenticate verifies the credentials against the stored hash and, on
// success, returns a freshly generated token. A single store lookup serves
// both the credential check and token generation.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.Tokens.Generate(user)
}

// ResolveToken implements httpx.IdentityResolver for the access gate: it
// reads the token's subject, re-fetches the user record, and accepts the
// token only if it is fully valid for that user.
func (s *AuthService) ResolveToken(ctx context.Context, raw string) (httpx.Identity, error) {
	subject, err := s.Tokens.ExtractSubject(raw)
	if err != nil {
		return httpx.Identity{}, err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, subject)
	if err != nil {
		return httpx.Identity{}, fmt.Errorf("lookup subject: %w", err)
	}

	if _, err := s.Tokens.Validate(raw, user); err != nil {
		return httpx.Identity{}, err
	}

	return httpx.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.String(),
	}, nil
}
