package httpx

// Package httpx is the HTTP transport: routing, middleware, cookie handling
// and the JSON surface over the auth services.

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/ports"
	"github.com/gamevault/authcore/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Resolver  *service.Resolver
	Directory *service.Directory
	Provider  ports.IdentityProvider
	States    *StateCodec
	StateTTL  time.Duration

	CookieDomain    string
	BaseURL         string
	SuccessRedirect string
	ErrorRedirect   string

	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cookies := CookieManager{Domain: services.CookieDomain}

	authHandlers := &AuthHandlers{
		Provider:        services.Provider,
		Resolver:        services.Resolver,
		States:          services.States,
		StateTTL:        services.StateTTL,
		Cookies:         cookies,
		BaseURL:         services.BaseURL,
		SuccessRedirect: services.SuccessRedirect,
		ErrorRedirect:   services.ErrorRedirect,
		Logger:          logger,
	}
	adminHandlers := &AdminHandlers{Directory: services.Directory}

	mux.HandleFunc("GET /auth/steam", authHandlers.SteamLogin)
	mux.HandleFunc("GET /auth/steam/return", authHandlers.SteamCallback)
	mux.HandleFunc("GET /api/me", authHandlers.Me)
	mux.HandleFunc("POST /api/logout", authHandlers.Logout)

	manageStaff := RequirePermission(auth.PermManageStaff)
	mux.Handle("GET /api/admins", manageStaff(http.HandlerFunc(adminHandlers.List)))
	mux.Handle("POST /api/admins", manageStaff(http.HandlerFunc(adminHandlers.Add)))
	mux.Handle("PATCH /api/admins/{steamId}", manageStaff(http.HandlerFunc(adminHandlers.Update)))
	mux.Handle("DELETE /api/admins/{steamId}", manageStaff(http.HandlerFunc(adminHandlers.Remove)))

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	var handler http.Handler = mux
	handler = WithViewer(services.Resolver, cookies)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
