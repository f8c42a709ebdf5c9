// Package authapi holds the wire types for the keyfold HTTP API, the
// validation run at the request boundary, and a small client for driving the
// service from Go code and end-to-end tests.
package authapi

// RegisterRequest is the body of POST /api/v1/auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthenticateRequest is the body of POST /api/v1/auth/authenticate.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a freshly issued bearer token.
type AuthResponse struct {
	Token string `json:"token"`
}

// UserResponse is the profile shape returned by GET /api/v1/users/me.
type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// ErrorResponse is the generic error envelope.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request validation fails.
type ValidationErrorResponse struct {
	// Code is the error code, always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific validation errors (field name: reason)
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is the body of /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
