package di

import (
	"context"
	"fmt"
	"time"

	"MacroPulse/internal/domain/repository"
	"MacroPulse/internal/handler/api"
	"MacroPulse/internal/handler/ws"
	internalrepo "MacroPulse/internal/repository"
	"MacroPulse/internal/service/fred"
	"MacroPulse/internal/service/gemini"
	"MacroPulse/internal/service/ntfy"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/internal/usecase"
	pkgcache "MacroPulse/pkg/cache"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	pkgkafka "MacroPulse/pkg/kafka"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
	pkgpg "MacroPulse/pkg/postgres"
	"MacroPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "console"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	return applogger.New(lcfg)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePostgresClient creates the Postgres pool.
func ProvidePostgresClient(cfg *config.Config) (*pkgpg.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgpg.NewClient(ctx,
		pkgpg.WithURL(cfg.Postgres.URL),
		pkgpg.WithMaxConnections(cfg.Postgres.MaxConns, cfg.Postgres.MinConns),
		pkgpg.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pkgpg.WithDialTimeout(cfg.Postgres.DialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}
	return client, nil
}

// ProvideReadingStore creates the reading store and ensures its schema.
func ProvideReadingStore(pgClient *pkgpg.Client, logger *applogger.Logger) (repository.ReadingStore, error) {
	store := internalrepo.NewPostgresReadingStore(pgClient)
	if s, ok := store.(*internalrepo.PostgresReadingStore); ok {
		s.SetLogger(logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("reading store schema: %w", err)
	}
	return store, nil
}

// ProvideEventPublisher creates the Kafka publisher when brokers are configured,
// and attaches the aggregated error-log collector to it.
func ProvideEventPublisher(cfg *config.Config, logger *applogger.Logger) (repository.EventPublisher, error) {
	if !cfg.KafkaEnabled() {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	pub := internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)

	if cfg.Kafka.LogTopic != "" {
		logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      pub,
		})
	}
	return pub, nil
}

// ProvideCache selects layered memory+Redis when Redis is configured, memory otherwise.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache(), nil
	}

	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(redisCache), nil
}

// ProvideMacroSource creates the FRED client.
func ProvideMacroSource(cfg *config.Config, m repository.Metrics, logger *applogger.Logger) repository.MacroSource {
	return fred.New(cfg.FRED.APIKey, cfg.FRED.BaseURL, cfg.FRED.Timeout, m, logger)
}

// ProvideNotifier creates the ntfy client.
func ProvideNotifier(cfg *config.Config, logger *applogger.Logger) repository.Notifier {
	return ntfy.New(cfg.Ntfy.BaseURL, cfg.Ntfy.Topic, cfg.Ntfy.Timeout, logger)
}

// ProvideSummarizer creates the Gemini client, or nil when no key is set.
func ProvideSummarizer(cfg *config.Config) repository.Summarizer {
	if cfg.Gemini.APIKey == "" {
		return nil
	}
	return gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
}

// ProvideHub creates the WebSocket broadcast hub.
func ProvideHub(logger *applogger.Logger) *ws.Hub {
	return ws.NewHub(logger)
}

// ProvideLimiter creates the per-route token bucket limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideUpdateCycle creates the update pipeline wired to the live hub.
func ProvideUpdateCycle(
	source repository.MacroSource,
	store repository.ReadingStore,
	notifier repository.Notifier,
	publisher repository.EventPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
	hub *ws.Hub,
) *usecase.UpdateCycle {
	cycle := usecase.NewUpdateCycle(source, store, notifier, publisher, m, logger)
	cycle.SetBroadcaster(hub)
	return cycle
}

// ProvideDashboard creates the read-side usecase.
func ProvideDashboard(
	store repository.ReadingStore,
	source repository.MacroSource,
	summarizer repository.Summarizer,
	cache pkgcache.Service,
	cfg *config.Config,
	logger *applogger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(store, source, summarizer, cache, logger,
		cfg.Cache.SnapshotTTL, cfg.Cache.HistoryTTL)
}

// ProvideHandler creates the Echo route handler.
func ProvideHandler(
	logger *applogger.Logger,
	cycle *usecase.UpdateCycle,
	dashboard *usecase.Dashboard,
	notifier repository.Notifier,
	limiter *ratelimit.Limiter,
	hub *ws.Hub,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewMacroHandler(logger, cycle, dashboard, notifier, limiter, hub,
		cfg.RateLimit.UpdateCapacity, cfg.RateLimit.UpdateRefill)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	pgClient *pkgpg.Client,
	publisher repository.EventPublisher,
	hub *ws.Hub,
	handler xhttp.Handler,
) *server.App {
	var closer server.Closer
	if publisher != nil {
		closer = publisher
	}
	return server.New(cfg, logger, pgClient, closer, hub, handler)
}
