package http

import (
	"net/http"
	"time"

	"github.com/keyfold/keyfold/internal/auth/service"
	"github.com/keyfold/keyfold/internal/auth/store"
	"github.com/keyfold/keyfold/pkg/authapi"
	"github.com/keyfold/keyfold/pkg/httpx"
)

// LivezHandler reports process liveness.
//
//	@Summary		Liveness probe
//	@Description	Always returns ok while the process is up.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	authapi.HealthResponse	"Service is alive"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	})
}

// ReadyzHandler reports whether the service can do useful work: the database
// answers a ping and the token signer is configured.
//
//	@Summary		Readiness probe
//	@Description	Checks the database connection and the token signer.
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	authapi.HealthResponse	"Service is ready"
//	@Failure		503	{object}	authapi.HealthResponse	"One or more dependencies are unavailable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, tokens *service.TokenService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checks := authapi.HealthChecks{Database: "ok", Signer: "ok"}
		status := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}

		if tokens == nil || tokens.Signer == nil || tokens.Verifier == nil {
			checks.Signer = "unavailable"
			status = http.StatusServiceUnavailable
		}

		body := authapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  &checks,
		}
		if status != http.StatusOK {
			body.Status = "degraded"
		}

		httpx.WriteJSON(w, status, body)
	})
}
