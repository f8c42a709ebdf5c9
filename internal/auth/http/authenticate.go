package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/keyfold/keyfold/internal/auth/service"
	"github.com/keyfold/keyfold/pkg/authapi"
	"github.com/keyfold/keyfold/pkg/httpx"
	"github.com/keyfold/keyfold/pkg/slogx"
)

type AuthenticateHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles credential authentication.
//
//	@Summary		Authenticate with email and password
//	@Description	Verifies the credentials and returns a freshly issued bearer token. Unknown email and wrong password are deliberately indistinguishable.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.AuthenticateRequest			true	"Credentials"
//	@Success		200		{object}	authapi.AuthResponse				"Issued bearer token"
//	@Failure		400		{object}	authapi.ValidationErrorResponse		"Invalid request body or validation failed"
//	@Failure		401		{object}	authapi.ErrorResponse				"Invalid email or password"
//	@Failure		500		{object}	authapi.ErrorResponse				"Internal server error"
//	@Router			/api/v1/auth/authenticate [post].
func (h *AuthenticateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authapi.ErrInvalidRequest.WriteError(w)
		return
	}

	if errs := req.Validate(); errs != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, authapi.ValidationErrorResponse{
			Code:    "validation_error",
			Message: "validation failed for some fields",
			Details: errs,
		})
		return
	}

	token, err := h.AuthService.Authenticate(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			authapi.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("authentication failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.AuthResponse{Token: token})
}
