package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/service/directory"
	requestService "github.com/hostelmate/marketplace-api/internal/service/request"
	"github.com/hostelmate/marketplace-api/internal/worker"
	"github.com/hostelmate/marketplace-api/pkg/logger"
)

// workerConfig is read from the environment; the worker is deployed without
// the API's config file.
type workerConfig struct {
	StorageBackend  string        `envconfig:"STORAGE_BACKEND" default:"redis"`
	RedisURL        string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	RetentionDays   int           `envconfig:"RETENTION_DAYS" default:"30"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1h"`
}

func main() {
	var cfg workerConfig
	if err := envconfig.Process("hostelmate", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to read worker configuration")
	}

	kv, err := newKVStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize key-value store")
	}

	appLogger := logger.NewLogger(nil)
	requestSvc := requestService.NewService(kv, directory.NewSampleProvider(nil), appLogger, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("retention_days", cfg.RetentionDays).
		Dur("interval", cfg.CleanupInterval).
		Msg("starting notification retention worker")

	w := worker.NewNotificationRetentionWorker(requestSvc, cfg.RetentionDays, cfg.CleanupInterval, appLogger)
	w.Start(ctx)

	log.Info().Msg("worker stopped")
}

func newKVStore(cfg workerConfig) (kvstore.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return kvstore.NewMemory(), nil
	case "redis":
		return kvstore.NewRedis(kvstore.RedisConfig{URL: cfg.RedisURL})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
