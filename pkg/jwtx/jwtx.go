// Package jwtx wraps golang-jwt with the claim shape and validation rules
// used by the keyfold service. Tokens are signed with a single symmetric
// HS256 secret loaded at startup.
package jwtx

import "errors"

// Signer turns claims into a signed JWT string.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT's signature and structure and gives back the
// claims if it's legit. Expiry is validated separately via
// Claims.ValidateExpiry so callers that only need the subject of an expired
// token (e.g. diagnostics) can still read it.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	ErrSecretTooShort = errors.New("jwtx: signing secret shorter than 32 bytes")
)
