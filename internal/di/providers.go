package di

import (
	"fmt"
	"time"

	domrepo "BaseScan/internal/domain/repository"
	domsvc "BaseScan/internal/domain/service"
	"BaseScan/internal/engine"
	"BaseScan/internal/handler/api"
	internalrepo "BaseScan/internal/repository"
	icache "BaseScan/internal/service/cache"
	"BaseScan/internal/service/marketdata"
	"BaseScan/internal/usecase"
	pkgch "BaseScan/pkg/clickhouse"
	"BaseScan/pkg/config"
	xhttp "BaseScan/pkg/http"
	pkgkafka "BaseScan/pkg/kafka"
	applogger "BaseScan/pkg/logger"
	"BaseScan/pkg/metrics"
	"BaseScan/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when
// persistence is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideBarStore creates the ClickHouse bar store, or nil when disabled.
// Schema setup happens in App.Run via Init.
func ProvideBarStore(chClient *pkgch.Client, l *applogger.Logger) domrepo.BarStore {
	if chClient == nil {
		return nil
	}
	store := internalrepo.NewCHBarStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, or nil when messaging is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideBasePublisher creates the Kafka publisher, or a no-op one when
// messaging is disabled.
func ProvideBasePublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.BasePublisher {
	if producer == nil {
		return internalrepo.NopBasePublisher{}
	}
	return internalrepo.NewKafkaBasePublisher(producer, cfg.Kafka.Topic)
}

// ProvideBarProvider creates the chart-JSON market data client.
func ProvideBarProvider(cfg *config.Config) domrepo.BarProvider {
	timeout := cfg.MarketData.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	opts := []marketdata.ClientOption{
		marketdata.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(timeout))),
	}
	if cfg.MarketData.UserAgent != "" {
		opts = append(opts, marketdata.WithUserAgent(cfg.MarketData.UserAgent))
	}
	return marketdata.New(cfg.MarketData.BaseURL, opts...)
}

// ProvideDetector builds the detection engine from configured thresholds.
// Zero-valued fields fall back to the engine defaults.
func ProvideDetector(cfg *config.Config) domsvc.BaseDetector {
	return engine.NewDetector(engine.Params{
		MinDailyBars:          cfg.Engine.MinDailyBars,
		SlopeDays:             cfg.Engine.SlopeDays,
		RisingLookback:        cfg.Engine.RisingLookback,
		PivotWeeks:            cfg.Engine.PivotWeeks,
		TrailingHighWeeks:     cfg.Engine.TrailingHighWeeks,
		DarvasMaxDepthPct:     cfg.Engine.DarvasMaxDepthPct,
		DoubleBottomTolerance: cfg.Engine.DoubleBottomTolerance,
		PowerPlayMinRunup:     cfg.Engine.PowerPlayMinRunup,
		RelaxedUptrendProbe:   cfg.Engine.RelaxedUptrendProbe,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideBaseScanner creates the detection use case.
func ProvideBaseScanner(
	provider domrepo.BarProvider,
	store domrepo.BarStore,
	detector domsvc.BaseDetector,
	publisher domrepo.BasePublisher,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.BaseScanner {
	return usecase.NewBaseScanner(provider, store, detector, publisher, m, l)
}

// ProvideBytesCache creates the response cache. Redis when configured,
// in-process TTL cache otherwise.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideHandler wires the REST and websocket handlers.
func ProvideHandler(
	cfg *config.Config,
	scanner *usecase.BaseScanner,
	cache icache.BytesCache,
	l *applogger.Logger,
) xhttp.Handler {
	bases := api.NewBasesHandler(l, scanner)
	bases.SetCache(cache, cfg.Cache.TTL)
	stream := api.NewStreamHandler(l, scanner, cfg.Stream.RefreshInterval)
	return xhttp.HandlerGroup{bases, stream}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	store domrepo.BarStore,
	publisher domrepo.BasePublisher,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, store, publisher, l)
}
