package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum byte length accepted for the HS256 secret.
// Shorter secrets weaken the HMAC below the hash output size.
const MinSecretLength = 32

// HS256Signer implements Signer using a symmetric secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer, enforcing the minimum secret length.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// HS256Verifier validates tokens signed with the shared symmetric secret.
type HS256Verifier struct {
	secret []byte
	issuer string // expected iss claim; empty means "don't care"
}

// NewVerifierHS256 creates an HS256 verifier for the given secret and
// expected issuer.
func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify checks the token's signature and issuer and returns its claims.
// Expiry is deliberately not enforced here; callers decide whether they need
// a live token (Claims.ValidateExpiry) or just a trusted subject.
func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrAlgMismatch
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	default:
		return ErrMalformed
	}
}
