package authapi

import (
	"regexp"
	"strings"
)

const (
	requiredReason = "required"

	minPasswordLength = 6
	maxPasswordLength = 128
	maxNameLength     = 100
)

// reEmail is a syntactic sanity check, not a full RFC 5322 parser: one "@",
// no whitespace, and a dotted domain. Anything stricter rejects real
// addresses.
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the register request fields. Returns a map of field names
// to error messages, or nil if all fields are valid.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateName(errs, "firstName", r.FirstName)
	validateName(errs, "lastName", r.LastName)
	validateEmail(errs, r.Email)
	validatePassword(errs, r.Password)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the authenticate request fields.
func (r AuthenticateRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	validatePassword(errs, r.Password)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateName(errs map[string]string, field, value string) {
	name := strings.TrimSpace(value)
	switch {
	case name == "":
		errs[field] = requiredReason
	case len(name) > maxNameLength:
		errs[field] = "too long (max 100)"
	}
}

func validateEmail(errs map[string]string, value string) {
	email := strings.TrimSpace(value)
	switch {
	case email == "":
		errs["email"] = requiredReason
	case !reEmail.MatchString(email):
		errs["email"] = "must be a valid email address"
	}
}

func validatePassword(errs map[string]string, value string) {
	switch {
	case value == "":
		errs["password"] = requiredReason
	case len(value) < minPasswordLength:
		errs["password"] = "too short (min 6)"
	case len(value) > maxPasswordLength:
		errs["password"] = "too long (max 128)"
	}
}
