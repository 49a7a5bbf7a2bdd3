package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/medvoy/medvoy-platform/internal/api/router"
	"github.com/medvoy/medvoy-platform/internal/chat"
	appconfig "github.com/medvoy/medvoy-platform/internal/config"
	"github.com/medvoy/medvoy-platform/internal/costs"
	"github.com/medvoy/medvoy-platform/internal/flights"
	"github.com/medvoy/medvoy-platform/internal/hospitals"
	"github.com/medvoy/medvoy-platform/internal/images"
	"github.com/medvoy/medvoy-platform/internal/observability/metrics"
	"github.com/medvoy/medvoy-platform/internal/relay"
	"github.com/medvoy/medvoy-platform/internal/scrape"
	"github.com/medvoy/medvoy-platform/internal/upstream"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting medvoy-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage. Both backends are optional: without Postgres the catalog
	// runs from the curated seed, without Redis transcripts are not kept.
	var hospitalRepo hospitals.Repository
	var estimateRepo costs.SavedEstimateRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		hospitalRepo = hospitals.NewPostgresRepository(pool)
		estimateRepo = costs.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory catalog")
		hospitalRepo = hospitals.NewInMemoryRepository(hospitals.Seed())
		estimateRepo = costs.NewInMemoryRepository()
	}

	var transcripts chat.TranscriptStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		transcripts = chat.NewRedisTranscriptStore(rdb, cfg.TranscriptTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, transcripts will not be persisted")
	}

	relayMetrics := metrics.NewRelayMetrics(nil)
	capMetrics := metrics.NewCapabilityMetrics(nil)

	// Capability services.
	scraper := scrape.NewClient(scrape.Config{
		BaseURL: cfg.FirecrawlBaseURL,
		APIKey:  cfg.FirecrawlAPIKey,
	})
	imageSource := images.NewClient(images.Config{
		BaseURL: cfg.FreepikBaseURL,
		APIKey:  cfg.FreepikAPIKey,
	})
	hospitalSvc := hospitals.NewService(hospitalRepo, scraper, imageSource, logger)
	costSvc := costs.NewService(hospitalSvc, estimateRepo, logger)

	// The relay resolves tool calls through the capability endpoints, the
	// same surface external consumers use. By default it loops back to
	// this process.
	capBase := cfg.CapabilityBaseURL
	if capBase == "" {
		capBase = "http://127.0.0.1:" + cfg.Port
	}
	registry, err := chat.BuildRegistry(chat.NewCapabilityClient(chat.CapabilityConfig{
		BaseURL: capBase,
		Token:   cfg.ServiceToken,
	}))
	if err != nil {
		logger.Error("failed to build tool registry", "error", err)
		os.Exit(1)
	}

	gateway, err := upstream.NewClient(upstream.Config{
		BaseURL: cfg.AIGatewayURL,
		APIKey:  cfg.AIGatewayKey,
		Model:   cfg.AIModel,
		Timeout: cfg.UpstreamTimeout,
	})
	if err != nil {
		logger.Error("failed to configure upstream gateway", "error", err)
		os.Exit(1)
	}

	rel, err := relay.New(relay.Config{
		Source:       gateway,
		Registry:     registry,
		SystemPrompt: chat.SystemPrompt,
		Logger:       logger,
		Metrics:      relayMetrics,
	})
	if err != nil {
		logger.Error("failed to build relay", "error", err)
		os.Exit(1)
	}

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chat.NewHandler(rel, transcripts, logger),
		HospitalsHandler:   hospitals.NewHandler(hospitalSvc, logger, capMetrics),
		FlightsHandler:     flights.NewHandler(logger, capMetrics),
		CostsHandler:       costs.NewHandler(costSvc, logger, capMetrics),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ServiceToken:       cfg.ServiceToken,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
		// No WriteTimeout: /chat holds the response open for the life of
		// the upstream stream.
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
