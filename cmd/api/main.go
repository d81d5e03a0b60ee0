// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/admin"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/auth"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/config"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/health"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/mailer"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/middleware"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/project"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/reset"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/server"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/session"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/token"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	generateKeys := flag.Bool("generate-keys", false, "generate a signing key pair and exit")
	flag.Parse()

	if err := run(*configPath, *generateKeys); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, generateKeys bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if generateKeys {
		if err := token.GenerateKeyPair(cfg.Token.PrivateKeyPath, cfg.Token.PublicKeyPath); err != nil {
			return fmt.Errorf("generate keys: %w", err)
		}
		fmt.Printf("wrote %s and %s\n", cfg.Token.PrivateKeyPath, cfg.Token.PublicKeyPath)
		return nil
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := core.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	signer, err := token.NewSigner(cfg.Token)
	if err != nil {
		return fmt.Errorf("init token signer: %w", err)
	}

	smtp := mailer.NewSMTP(cfg.Email)
	sessions := session.NewRedisStore(rdb.Client, cfg.Session.TTL)

	userRepo := user.NewRepository(db.DB)
	userService := user.NewService(userRepo, signer, smtp, cfg.App.BaseURL, logger)
	userHandler := user.NewHandler(userService)

	authService := auth.NewService(userService, sessions, logger)
	authHandler := auth.NewHandler(authService, userService, cfg.Session)

	resetRepo := reset.NewRepository(db.DB)
	resetService := reset.NewService(
		resetRepo, userService, signer, smtp,
		cfg.App.BaseURL, cfg.Token.ResetTokenExpire, logger,
	)
	resetHandler := reset.NewHandler(resetService)
	sweeper := reset.NewSweeper(resetService, logger)
	go sweeper.Run(ctx)

	projectRepo := project.NewRepository(db.DB)
	authorizer := project.NewAuthorizer(projectRepo)
	projectService := project.NewService(projectRepo, authorizer, logger)
	projectHandler := project.NewHandler(projectService)

	healthHandler := health.NewHandler()
	healthHandler.AddComponent("database", db)
	healthHandler.AddComponent("redis", rdb)

	adminHandler := admin.NewHandler(userService, db, rdb)

	limiter := middleware.NewRateLimiter(rdb.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests, cfg.RateLimit.Burst, cfg.RateLimit.Window,
		),
		FailOpen: true,
	})
	defer limiter.Close()

	router := newRouter(
		cfg, logger, limiter, authService,
		userHandler, authHandler, resetHandler, projectHandler,
		healthHandler, adminHandler,
	)

	srv := server.New(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	healthHandler.SetShuttingDown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newRouter(
	cfg *config.Config,
	logger *slog.Logger,
	limiter *middleware.RateLimiter,
	resolver middleware.PrincipalResolver,
	userHandler *user.Handler,
	authHandler *auth.Handler,
	resetHandler *reset.Handler,
	projectHandler *project.Handler,
	healthHandler *health.Handler,
	adminHandler *admin.Handler,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Handler)

		userHandler.RegisterRoutes(r)
		authHandler.RegisterPublicRoutes(r)
		resetHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(resolver))

			authHandler.RegisterProtectedRoutes(r)
			resetHandler.RegisterProtectedRoutes(r)
			projectHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				adminHandler.RegisterRoutes(r)
			})
		})
	})

	return r
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
