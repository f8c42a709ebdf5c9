package service

import (
	"errors"
	"time"

	"github.com/keyfold/keyfold/internal/auth/domain"
	"github.com/keyfold/keyfold/pkg/jwtx"
)

// ErrSubjectMismatch is returned when a structurally valid token was issued
// for a different user than the one it is being checked against.
var ErrSubjectMismatch = errors.New("service: token subject mismatch")

// TokenService issues and validates the signed, expiring bearer tokens bound
// to a user identity. Tokens are stateless: nothing is persisted server-side
// and expiry is the only way a token dies.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

// Generate produces a signed token for the user with the email as subject
// and the standard temporal claims (iat, nbf, exp = iat + TTL).
func (s *TokenService) Generate(u domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewClaims(u.Email, u.Role.String(), s.Issuer, ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// ExtractSubject verifies the token's signature and returns its subject
// claim without enforcing expiry. The gate uses this to decide which user
// record to re-check before the full validation runs.
func (s *TokenService) ExtractSubject(raw string) (string, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Validate checks that the token's signature verifies, that it was issued
// for u, and that it has not expired. Sentinel errors distinguish the
// failure modes for callers that need diagnostics.
func (s *TokenService) Validate(raw string, u domain.User) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, err
	}

	if claims.Subject != u.Email {
		return jwtx.Claims{}, ErrSubjectMismatch
	}

	if err := claims.ValidateExpiry(); err != nil {
		return jwtx.Claims{}, err
	}

	return claims, nil
}

// IsValid is the boolean gate decision over Validate, for callers that only
// need a yes/no.
func (s *TokenService) IsValid(raw string, u domain.User) bool {
	_, err := s.Validate(raw, u)
	return err == nil
}
