package di

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivam007kumar/customer-churn/internal/domain/repository"
	"github.com/Shivam007kumar/customer-churn/internal/handler/api"
	internalrepo "github.com/Shivam007kumar/customer-churn/internal/repository"
	"github.com/Shivam007kumar/customer-churn/internal/service/ratelimit"
	"github.com/Shivam007kumar/customer-churn/internal/service/upstream"
	"github.com/Shivam007kumar/customer-churn/internal/usecase"
	pkgch "github.com/Shivam007kumar/customer-churn/pkg/clickhouse"
	"github.com/Shivam007kumar/customer-churn/pkg/config"
	xhttp "github.com/Shivam007kumar/customer-churn/pkg/http"
	pkgkafka "github.com/Shivam007kumar/customer-churn/pkg/kafka"
	applogger "github.com/Shivam007kumar/customer-churn/pkg/logger"
	"github.com/Shivam007kumar/customer-churn/pkg/metrics"
	"github.com/Shivam007kumar/customer-churn/pkg/server"
)

const schemaTimeout = 10 * time.Second

// ProvideKafkaProducer creates a Kafka producer when the outcome sink or the
// log collector needs one; otherwise it returns nil.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, func(), error) {
	if cfg.Events.Backend != config.EventsBackendKafka && !cfg.Logging.Collector.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(pkgkafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Compression:  cfg.Kafka.Compression,
		RequiredAcks: cfg.Kafka.RequiredAcks,
		BatchSize:    cfg.Kafka.Producer.BatchSize,
		BatchBytes:   cfg.Kafka.Producer.BatchBytes,
		BatchTimeout: cfg.Kafka.Producer.Linger,
		WriteTimeout: cfg.Kafka.Producer.WriteTimeout,
		ReadTimeout:  cfg.Kafka.Producer.ReadTimeout,
		MaxAttempts:  cfg.Kafka.Producer.MaxAttempts,
		Async:        cfg.Kafka.Producer.Async,
		HashByKey:    true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideLogger creates the application logger and attaches the error log
// collector when enabled.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, func(), error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	if !cfg.Logging.Collector.Enabled || producer == nil {
		return l, func() {}, nil
	}
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   cfg.Logging.Collector.Interval,
		CountThreshold: cfg.Logging.Collector.CountThreshold,
		Topic:          cfg.Logging.Collector.Topic,
		Publisher:      internalrepo.NewKafkaLogPublisher(producer),
	})
	return l, l.RemoveCollector, nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideUpstream creates the forwarder to the hosted prediction model.
func ProvideUpstream(cfg *config.Config) repository.Upstream {
	return upstream.New(cfg.Relay.UpstreamURL, cfg.Relay.Timeout)
}

// ProvideOutcomeSink selects the outcome event backend.
func ProvideOutcomeSink(cfg *config.Config, producer *pkgkafka.Producer, l *applogger.Logger) (repository.OutcomeSink, func(), error) {
	var (
		sink    repository.OutcomeSink
		cleanup = func() {}
	)
	switch cfg.Events.Backend {
	case config.EventsBackendKafka:
		if producer == nil {
			return nil, nil, fmt.Errorf("kafka outcome sink: no producer")
		}
		sink = internalrepo.NewKafkaOutcomeSink(producer, cfg.Kafka.Topic)
	case config.EventsBackendClickHouse:
		client, err := provideClickHouseClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		sink = internalrepo.NewClickHouseOutcomeSink(client.DB(), cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table)
		cleanup = func() { _ = client.Close() }
	case config.EventsBackendPostgres:
		pool, err := providePostgresPool(cfg)
		if err != nil {
			return nil, nil, err
		}
		sink = internalrepo.NewPostgresOutcomeSink(pool, cfg.Postgres.Table, pool.Close)
		cleanup = func() { _ = sink.Close() }
	default:
		sink = internalrepo.NewNoopOutcomeSink()
	}
	l.Info("outcome sink ready", applogger.String("backend", sink.Name()))
	return sink, cleanup, nil
}

func provideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(pkgch.ClientConfig{
		Host:         cfg.ClickHouse.Host,
		Port:         cfg.ClickHouse.Port,
		Database:     cfg.ClickHouse.Database,
		User:         cfg.ClickHouse.User,
		Password:     cfg.ClickHouse.Password,
		UseHTTP:      cfg.ClickHouse.UseHTTP,
		AsyncInsert:  cfg.ClickHouse.AsyncInsert,
		WaitForAsync: cfg.ClickHouse.WaitForAsync,
		DialTimeout:  cfg.ClickHouse.DialTimeout,
		ReadTimeout:  cfg.ClickHouse.ReadTimeout,
		MaxExecTime:  cfg.ClickHouse.MaxExecutionTime,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	stmts := append([]string{"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database},
		internalrepo.ClickHouseOutcomeSchema(cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table)...)
	if err := client.InitSchema(ctx, stmts); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

func providePostgresPool(cfg *config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres dsn: %w", err)
	}
	if cfg.Postgres.MaxConns > 0 {
		pcfg.MaxConns = cfg.Postgres.MaxConns
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := internalrepo.InitPostgresOutcomeSchema(ctx, pool, cfg.Postgres.Table); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ProvideRelay creates the relay use case.
func ProvideRelay(
	up repository.Upstream,
	sink repository.OutcomeSink,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Relay {
	return usecase.NewRelay(up, sink, m, l, usecase.RelayOptions{
		StrictValidation: cfg.Relay.StrictValidation,
		SinkTimeout:      cfg.Events.Timeout,
	})
}

// ProvidePredictHandler creates the HTTP handler for the relay routes.
func ProvidePredictHandler(l *applogger.Logger, relay *usecase.Relay, cfg *config.Config) *api.PredictEchoHandler {
	h := api.NewPredictEchoHandler(l, relay, cfg.Relay.MaxBodyBytes)
	if rl := cfg.Relay.RateLimit; rl.Burst > 0 && rl.PerSecond > 0 {
		h.WithLimiter(ratelimit.New(rl.Burst, rl.PerSecond))
	}
	return h
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h *api.PredictEchoHandler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithTrustedProxies(cfg.Server.TrustedProxies),
		xhttp.WithMetrics(metricsPath, cfg.Metrics.SlowThreshold),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, l)
}
