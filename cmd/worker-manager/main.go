// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"sake-reco/internal/api"
	"sake-reco/internal/catalog"
	"sake-reco/internal/common/camunda"
	"sake-reco/internal/common/config"
	"sake-reco/internal/common/database"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/common/observability"
	"sake-reco/internal/common/validation"
	"sake-reco/internal/matching"
	"sake-reco/internal/models"

	rc "sake-reco/internal/workers/catalog/refresh-catalog"
	bsr "sake-reco/internal/workers/recommendation/build-sake-response"
	fss "sake-reco/internal/workers/recommendation/find-similar-sake"
	ms "sake-reco/internal/workers/recommendation/match-sake"
	pp "sake-reco/internal/workers/recommendation/parse-preferences"
	qs "sake-reco/internal/workers/recommendation/questionnaire-step"
)

const (
	sessionSweepInterval = time.Minute
	shutdownTimeout      = 30 * time.Second
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	validator, err := validation.NewDefaultValidator()
	if err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	// --- Catalog store, optionally backed by the Redis snapshot cache ---
	var storeOpts []catalog.StoreOption
	if redisClient := connectRedis(ctx, cfg, zapLog); redisClient != nil {
		defer redisClient.Close()
		storeOpts = append(storeOpts, catalog.WithSnapshotCache(
			catalog.NewSnapshotCache(redisClient.Client, cfg.Catalog.CacheTTLDuration()),
		))
	}

	fetcher := catalog.NewHTTPFetcher(cfg.Catalog.Endpoint, cfg.Catalog.TimeoutDuration())
	store := catalog.NewStore(fetcher, log, storeOpts...)
	zapLog.Info("catalog endpoint", zap.String("endpoint", fetcher.Endpoint()))

	if cfg.Catalog.WarmFromCache {
		if warmed, err := store.Warm(ctx); err != nil {
			zapLog.Warn("catalog warm-up from cache failed", zap.Error(err))
		} else if warmed {
			zapLog.Info("catalog warmed from cache", zap.Int("count", store.Count()))
		}
	}
	if cfg.Catalog.LoadOnStart {
		// Readers see the warmed snapshot, or nothing, until this lands.
		go func() {
			if _, err := store.Load(ctx); err != nil {
				zapLog.Warn("initial catalog load failed", zap.Error(err))
			}
		}()
	}

	// --- Job handlers, shared by the Zeebe workers and the HTTP API ---
	refresh := rc.NewHandler(rc.LoadConfig(cfg), store, validator, obs, log)
	parse := pp.NewHandler(pp.LoadConfig(cfg), validator, obs, log)
	match := ms.NewHandler(ms.LoadConfig(cfg), store, validator, obs, log)
	similar := fss.NewHandler(fss.LoadConfig(cfg), store, validator, obs, log)
	step := qs.NewHandler(qs.LoadConfig(cfg), store, validator, obs, log)
	respond := bsr.NewHandler(bsr.LoadConfig(cfg), validator, obs, log)

	// --- Zeebe workers ---
	var workers []worker.JobWorker
	var zeebe *camunda.Client
	if cfg.Camunda.BrokerAddress == "" {
		zapLog.Info("camunda.broker_address not set, Zeebe workers disabled")
	} else {
		zeebe, err = camunda.NewClient(ctx, cfg.Camunda.BrokerAddress)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		workers = camunda.StartWorkers(zeebe.Zeebe(), cfg, []camunda.Registration{
			{TaskType: rc.TaskType, Handler: refresh.Handle},
			{TaskType: pp.TaskType, Handler: parse.Handle},
			{TaskType: ms.TaskType, Handler: match.Handle},
			{TaskType: fss.TaskType, Handler: similar.Handle},
			{TaskType: qs.TaskType, Handler: step.Handle},
			{TaskType: bsr.TaskType, Handler: respond.Handle},
		}, log)
		zapLog.Info("workers registered", zap.Int("count", len(workers)))
	}

	// --- HTTP API ---
	questionnaireLimit := cfg.Matching.QuestionnaireLimit
	sessions := api.NewSessionStore(cfg.Sessions.IdleTTLDuration(), func(p models.Preferences) []models.RankedResult {
		return matching.Match(store.Items(), p, matching.Options{Limit: questionnaireLimit})
	}, log, api.TrackCatalog(store.Snapshot))
	go sessions.Run(ctx, sessionSweepInterval)

	server := api.NewServer(cfg.Server, store, api.Handlers{
		Refresh:  refresh,
		Parse:    parse,
		Match:    match,
		Similar:  similar,
		Response: respond,
	}, sessions, log)

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped")
}

// connectRedis returns nil when the snapshot cache is disabled or Redis
// cannot be reached; the catalog then runs without persistence.
func connectRedis(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) *database.RedisClient {
	if cfg.Database.Redis.Address == "" || cfg.Catalog.CacheTTL <= 0 {
		zapLog.Info("catalog snapshot cache disabled")
		return nil
	}

	var client *database.RedisClient
	err := retryWithBackoff(func() error {
		var err error
		client, err = database.NewRedis(ctx, cfg.Database.Redis)
		return err
	}, 5, time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Warn("redis unavailable, continuing without snapshot cache", zap.Error(err))
		return nil
	}
	zapLog.Info("Redis connected successfully")
	return client
}
