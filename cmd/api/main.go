package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hostelmate/marketplace-api/config"
	authHandler "github.com/hostelmate/marketplace-api/internal/handler/auth"
	directoryHandler "github.com/hostelmate/marketplace-api/internal/handler/directory"
	healthHandler "github.com/hostelmate/marketplace-api/internal/handler/health"
	notificationHandler "github.com/hostelmate/marketplace-api/internal/handler/notification"
	profileHandler "github.com/hostelmate/marketplace-api/internal/handler/profile"
	requestHandler "github.com/hostelmate/marketplace-api/internal/handler/request"
	"github.com/hostelmate/marketplace-api/internal/email"
	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/middleware"
	"github.com/hostelmate/marketplace-api/internal/router"
	authService "github.com/hostelmate/marketplace-api/internal/service/auth"
	"github.com/hostelmate/marketplace-api/internal/service/directory"
	requestService "github.com/hostelmate/marketplace-api/internal/service/request"
	"github.com/hostelmate/marketplace-api/internal/store"
	pkgauth "github.com/hostelmate/marketplace-api/pkg/auth"
	"github.com/hostelmate/marketplace-api/pkg/logger"
	"github.com/hostelmate/marketplace-api/pkg/metrics"
	"github.com/hostelmate/marketplace-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	kv, err := newKVStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize key-value store")
	}

	appMetrics := metrics.New("hostelmate")
	if cfg.Monitoring.PrometheusEnabled {
		if err := appMetrics.Register(prometheus.DefaultRegisterer); err != nil {
			log.Fatal().Err(err).Msg("failed to register metrics")
		}
		kv = kvstore.NewInstrumented(kv, appMetrics)
	}

	stores := store.NewFactory(kv, appLogger)

	dirProvider := directory.NewCachedProvider(directory.NewSampleProvider(nil), cfg.Directory.CacheTTL)
	requestSvc := requestService.NewService(kv, dirProvider, appLogger, appMetrics)

	tokens := pkgauth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	hasher := security.NewBcryptHasher(0)
	mailer := email.NewService(cfg.Email)
	authSvc := authService.NewService(kv, stores, hasher, tokens, mailer, appLogger)

	authMw := middleware.NewAuthMiddleware(tokens)

	routerCfg := router.Config{
		CORS:           middleware.DefaultCORSConfig(),
		MetricsEnabled: cfg.Monitoring.PrometheusEnabled,
		MetricsPath:    cfg.Monitoring.MetricsPath,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}

	r := router.New(
		authMw,
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(kv),
		requestHandler.NewHandler(requestSvc, stores, authMw),
		notificationHandler.NewHandler(requestSvc),
		profileHandler.NewHandler(stores),
		directoryHandler.NewHandler(requestSvc),
		routerCfg,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("backend", cfg.Storage.Backend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
}

func newKVStore(cfg config.StorageConfig) (kvstore.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return kvstore.NewMemory(), nil
	case "redis":
		return kvstore.NewRedis(cfg.Redis)
	case "postgres":
		return kvstore.NewPostgres(cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
