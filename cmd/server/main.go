package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/textlens/text-analysis-platform/internal/analytics"
	apihandler "github.com/textlens/text-analysis-platform/internal/api/handler"
	"github.com/textlens/text-analysis-platform/internal/api/router"
	"github.com/textlens/text-analysis-platform/internal/analyzer"
	"github.com/textlens/text-analysis-platform/internal/analyzer/cache"
	"github.com/textlens/text-analysis-platform/internal/auth/apikey"
	"github.com/textlens/text-analysis-platform/internal/auth/ratelimit"
	"github.com/textlens/text-analysis-platform/internal/classifier"
	"github.com/textlens/text-analysis-platform/internal/entity"
	"github.com/textlens/text-analysis-platform/internal/generator"
	"github.com/textlens/text-analysis-platform/internal/qa"
	"github.com/textlens/text-analysis-platform/internal/sentiment"
	"github.com/textlens/text-analysis-platform/internal/session"
	"github.com/textlens/text-analysis-platform/internal/summarizer"
	"github.com/textlens/text-analysis-platform/internal/textproc"
	"github.com/textlens/text-analysis-platform/internal/translator"
	"github.com/textlens/text-analysis-platform/pkg/config"
	"github.com/textlens/text-analysis-platform/pkg/health"
	"github.com/textlens/text-analysis-platform/pkg/kafka"
	"github.com/textlens/text-analysis-platform/pkg/logger"
	"github.com/textlens/text-analysis-platform/pkg/metrics"
	"github.com/textlens/text-analysis-platform/pkg/postgres"
	pkgredis "github.com/textlens/text-analysis-platform/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting text analysis service", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Result cache (optional).
	var resultCache *cache.ResultCache
	var redisClient *pkgredis.Client
	redisClient, err = pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, result caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		resultCache = cache.New(redisClient, cfg.Redis.CacheTTL, m)
		slog.Info("result cache enabled",
			"addr", cfg.Redis.Addr,
			"ttl", cfg.Redis.CacheTTL,
		)
	}

	// Usage event pipeline.
	usageProducer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.UsageEvents)
	defer usageProducer.Close()
	collector := analytics.NewCollector(usageProducer, 100, 5*time.Second)
	collector.Start(ctx)
	defer collector.Close()

	aggregator := analytics.NewAggregator()
	usageConsumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.UsageEvents, analytics.HandleEvent(aggregator))
	go func() {
		if err := aggregator.Start(ctx, usageConsumer); err != nil {
			slog.Error("usage aggregator error", "error", err)
		}
	}()
	usageHandler := analytics.NewHandler(aggregator)
	slog.Info("usage pipeline started", "topic", cfg.Kafka.Topics.UsageEvents)

	// API keys (optional; auth disabled without postgres).
	var validator *apikey.Validator
	var usageStore *analytics.Store
	pgClient, err := postgres.New(cfg.Postgres)
	if err != nil {
		slog.Warn("postgres unavailable, authentication disabled", "error", err)
	} else {
		defer pgClient.Close()
		validator = apikey.NewValidator(pgClient)
		usageStore = analytics.NewStore(pgClient)
		usageStore.StartPeriodicSave(ctx, aggregator, 5*time.Minute)
		slog.Info("api key validation enabled")
	}
	limiter := ratelimit.New(time.Minute)

	// Analysis features.
	norm := textproc.NewNormalizer()
	translatorService := translator.NewService(translator.NewHTTPProvider(cfg.Translator))
	service := analyzer.New(
		entity.NewExtractor(),
		summarizer.New(norm),
		qa.New(norm, cfg.Analysis.TopKSentences),
		sentiment.New(norm),
		classifier.New(),
		generator.New(),
		translatorService,
		analyzer.Deps{Cache: resultCache, Collector: collector, Metrics: m},
	)

	checker := health.NewChecker()
	checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
		if redisClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := redisClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})
	checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
		if pgClient == nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: "not configured"}
		}
		if err := pgClient.Ping(ctx); err != nil {
			return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
		}
		return health.ComponentHealth{Status: health.StatusUp}
	})

	sessions := session.NewStore()
	h := apihandler.New(service, sessions, cfg.Analysis)
	admin := apihandler.NewAdmin(h, validator)

	chain := router.New(router.Deps{
		Handler:        h,
		Admin:          admin,
		Usage:          usageHandler,
		Health:         checker,
		Metrics:        m,
		Validator:      validator,
		Limiter:        limiter,
		RequestTimeout: cfg.Server.WriteTimeout,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("text analysis service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("text analysis service stopped")
}
