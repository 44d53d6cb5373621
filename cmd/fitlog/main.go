package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	adapthttp "fitlog/internal/adapter/http"
	"fitlog/internal/adapter/memory"
	"fitlog/internal/adapter/postgres"
	"fitlog/internal/app"
	"fitlog/internal/config"
	"fitlog/internal/domain"
)

type store interface {
	domain.WorkoutLogRepository
	domain.AccountRepository
	adapthttp.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("fitlog exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db       store
		sessions domain.SessionRepository
	)
	if cfg.DatabaseURL != "" {
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() { _ = pg.Close() }()
		db, sessions = pg, postgres.NewSessionRepo(pg)
	} else {
		logger.Warn("DATABASE_URL not set, using the in-memory store; data is lost on restart")
		mem := memory.New()
		db, sessions = mem, mem.NewSessionRepo()
	}
	legacy := memory.NewLegacyCardioStore()

	progressSvc := app.NewProgressService(db, db, logger)
	profileSvc := app.NewProfileService(db)
	legacySvc := app.NewLegacyProgressService(legacy)
	authSvc := app.NewAuthService(db, sessions, db, legacy)

	opts := []adapthttp.Option{
		adapthttp.WithLogger(logger),
		adapthttp.WithHealthCheck(db),
		adapthttp.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
	if cfg.AuthMode == config.AuthRequired {
		opts = append(opts, adapthttp.WithRequiredAuth())
	}
	if cfg.ForwardAuth {
		opts = append(opts, adapthttp.WithForwardAuth())
		logger.Warn("forward auth enabled, Remote-User is trusted; the proxy must strip it from client requests")
	}
	if cfg.OIDC.Enabled() {
		oidcCfg, err := setupOIDC(ctx, cfg.OIDC)
		if err != nil {
			return err
		}
		opts = append(opts, adapthttp.WithOIDC(oidcCfg))
		logger.Info("sso enabled", "issuer", cfg.OIDC.Issuer)
	}

	go purgeSessions(ctx, authSvc, cfg.SessionPurgeInterval, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapthttp.New(progressSvc, profileSvc, legacySvc, authSvc, opts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "auth_mode", cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupOIDC(ctx context.Context, c config.OIDC) (adapthttp.OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, c.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func purgeSessions(ctx context.Context, authSvc *app.AuthService, every time.Duration, logger *slog.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authSvc.PurgeExpiredSessions(ctx); err != nil {
				logger.Warn("purge expired sessions", "error", err)
			}
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
