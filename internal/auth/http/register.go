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

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles new account registration.
//
//	@Summary		Register a new user
//	@Description	Creates a user account with the default role and returns a freshly issued bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.RegisterRequest				true	"Registration details"
//	@Success		201		{object}	authapi.AuthResponse				"Issued bearer token"
//	@Failure		400		{object}	authapi.ValidationErrorResponse		"Invalid request body or validation failed"
//	@Failure		409		{object}	authapi.ErrorResponse				"Email already registered"
//	@Failure		500		{object}	authapi.ErrorResponse				"Internal server error"
//	@Router			/api/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.RegisterRequest
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

	token, err := h.AuthService.Register(ctx, service.RegisterParams{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			authapi.ErrEmailTaken.WriteError(w)
			return
		}
		log.Error("registration failed", "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	log.Info("user registered", "email", strings.TrimSpace(req.Email))
	httpx.WriteJSON(w, http.StatusCreated, authapi.AuthResponse{Token: token})
}
