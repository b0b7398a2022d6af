// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"medisearch/internal/api"
	"medisearch/internal/common/config"
	"medisearch/internal/common/database"
	"medisearch/internal/common/logger"
	"medisearch/internal/common/notify"
	"medisearch/internal/common/observability"
	"medisearch/internal/engine/order"
	"medisearch/internal/engine/prescription"
	"medisearch/internal/engine/search"
	"medisearch/internal/orders"
	"medisearch/internal/stores"
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

	zapLog.Info("Starting medisearch server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("provider", cfg.Search.Provider),
	)

	obs := observability.New("medisearch")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Store provider ---
	var provider stores.Provider
	switch cfg.Search.Provider {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
		provider = stores.NewPostgresProvider(pg.DB, cfg.Search.MaxStoreCount, log)

	case "elasticsearch":
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		provider = stores.NewElasticsearchProvider(
			esClient.Client, cfg.Database.Elasticsearch.Index, cfg.Search.MaxStoreCount, log)

	default:
		provider = stores.NewSeedProvider()
	}

	// --- Redis snapshot cache ---
	if cfg.Search.CacheEnabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")
		provider = stores.NewCachedProvider(
			provider, rdb.Client, time.Duration(cfg.Search.CacheTTL)*time.Second, log)
	}

	// --- Order sink ---
	var sink orders.Sink
	if cfg.Search.Provider == "postgres" {
		var pgOrders *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pgOrders, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pgOrders.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL order sink connection")
		if err != nil {
			zapLog.Fatal("postgres order sink failed after retries", zap.Error(err))
		}
		defer pgOrders.Close()
		sink = orders.NewPostgresSink(pgOrders.DB, log)
	} else {
		sink = orders.NewMemorySink()
	}

	// --- Notifications ---
	notifier, err := notify.New(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	// --- Engine wiring ---
	classifier := prescription.NewTableClassifier(cfg.Prescription.ExtraMedicines...)
	searchSvc := search.NewService(provider, classifier, log)
	builder := order.NewBuilder(classifier, order.NewTieredPricer(cfg.Delivery.Tiers))

	server := api.NewServer(searchSvc, builder, sink, notifier, obs, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// pprof on a separate port, never exposed through the main router.
	go func() {
		if err := http.ListenAndServe(":6060", nil); err != nil {
			zapLog.Warn("pprof server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
