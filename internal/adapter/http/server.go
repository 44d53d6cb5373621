package adapthttp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"

	"fitlog/internal/app"
)

// OIDCConfig holds the SSO provider. The zero value disables SSO.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	progress *app.ProgressService
	profile  *app.ProfileService
	legacy   *app.LegacyProgressService
	authSvc  *app.AuthService

	oidcConfig  OIDCConfig
	disableAuth bool
	requireAuth bool
	forwardAuth bool
	health      Pinger
	limiter     *ipLimiter
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithoutAuth skips identity resolution on progress and profile routes.
func WithoutAuth() Option {
	return func(s *Server) { s.disableAuth = true }
}

// WithRequiredAuth rejects progress and profile requests that carry no session.
func WithRequiredAuth() Option {
	return func(s *Server) { s.requireAuth = true }
}

// WithForwardAuth trusts the Remote-User header set by an authenticating
// reverse proxy. Only enable it when the proxy strips that header from
// client requests.
func WithForwardAuth() Option {
	return func(s *Server) { s.forwardAuth = true }
}

// WithOIDC enables the SSO routes.
func WithOIDC(cfg OIDCConfig) Option {
	return func(s *Server) { s.oidcConfig = cfg }
}

// WithHealthCheck makes /health ping p.
func WithHealthCheck(p Pinger) Option {
	return func(s *Server) { s.health = p }
}

// WithRateLimit limits each client IP to rps requests per second with the
// given burst. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = newIPLimiter(rps, burst)
	}
}

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock overrides the time source used for check-ins and week windows.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server wired to the given application services.
func New(progress *app.ProgressService, profile *app.ProfileService, legacy *app.LegacyProgressService, authSvc *app.AuthService, opts ...Option) *Server {
	s := &Server{
		progress: progress,
		profile:  profile,
		legacy:   legacy,
		authSvc:  authSvc,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/logout", s.handleLogout)
	mux.Handle("/auth/delete-account", s.authMiddleware(http.HandlerFunc(s.handleDeleteAccount)))
	mux.HandleFunc("/auth/config", s.handleConfig)
	mux.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	mux.Handle("/profile", s.authMiddleware(http.HandlerFunc(s.handleProfile)))
	mux.Handle("/progress", s.authMiddleware(http.HandlerFunc(s.handleLegacyProgress)))
	mux.Handle("/progress/workout/checkin", s.authMiddleware(http.HandlerFunc(s.handleCheckIn)))
	mux.Handle("/progress/weekly-summary", s.authMiddleware(http.HandlerFunc(s.handleWeeklySummary)))
	mux.Handle("/progress/daily-checkins", s.authMiddleware(http.HandlerFunc(s.handleDailyCheckins)))

	var h http.Handler = mux
	if s.limiter != nil {
		h = s.limiter.middleware(h)
	}
	h = metricsMiddleware(h)
	h = s.loggingMiddleware(h)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
	)
	return cors(h)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeMessage(w, http.StatusOK, "Fitness App Backend Running!")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.logger.ErrorContext(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
