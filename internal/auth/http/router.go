package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/keyfold/keyfold/internal/auth/service"
	"github.com/keyfold/keyfold/internal/auth/store"
	"github.com/keyfold/keyfold/pkg/httpx"
	"github.com/keyfold/keyfold/pkg/slogx"

	_ "github.com/keyfold/keyfold/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService  *service.AuthService
	TokenService *service.TokenService
	UserService  *service.UserService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		middlewares: []httpx.Middleware{
			slogx.HTTPMiddleware(logger),
		},
	}
}

func (r *Router) ApplyRoutes() {
	// The access gate runs on every request. It only attaches an identity;
	// rejection happens per-route via RequireIdentity.
	r.middlewares = append(r.middlewares, httpx.AuthnMiddleware(r.AuthService))

	r.registerAuth()
	r.registerDemo()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Keyfold Authentication Service API
//	@version		0.1.0
//	@description	Minimal credential-issuance service: registers users, authenticates credentials, and issues signed, expiring bearer tokens (HS256 JWT).
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/v1/auth/register",
		&RegisterHandler{AuthService: r.AuthService},
	)
	r.Mux.Handle("POST /api/v1/auth/authenticate",
		&AuthenticateHandler{AuthService: r.AuthService},
	)
}

func (r *Router) registerDemo() {
	r.Mux.Handle("GET /api/v1/demo/hello",
		httpx.Chain(DemoHelloHandler(),
			httpx.RequireIdentity(),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserInfoHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/v1/users/me",
		httpx.Chain(h,
			httpx.RequireIdentity(),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService))
}
