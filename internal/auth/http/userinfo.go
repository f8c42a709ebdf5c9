package http

import (
	"net/http"
	"time"

	"github.com/keyfold/keyfold/internal/auth/service"
	"github.com/keyfold/keyfold/pkg/authapi"
	"github.com/keyfold/keyfold/pkg/httpx"
	"github.com/keyfold/keyfold/pkg/slogx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the profile of the authenticated user.
//
//	@Summary		Current user profile
//	@Description	Returns the profile of the user identified by the bearer token.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authapi.UserResponse	"Authenticated user's profile"
//	@Failure		401	{object}	authapi.ErrorResponse	"Missing or invalid bearer token"
//	@Failure		500	{object}	authapi.ErrorResponse	"Internal server error"
//	@Router			/api/v1/users/me [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, id.UserID)
	if err != nil {
		log.Error("failed to load user profile", "user_id", id.UserID, "err", err)
		authapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}
