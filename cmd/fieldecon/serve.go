package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/ougirez/fieldecon/internal/api"
	"github.com/ougirez/fieldecon/internal/config"
	"github.com/ougirez/fieldecon/internal/pkg/cache"
	"github.com/ougirez/fieldecon/internal/pkg/events"
	"github.com/ougirez/fieldecon/internal/pkg/logger"
	"github.com/ougirez/fieldecon/internal/pkg/metrics"
	"github.com/ougirez/fieldecon/internal/pkg/store"
	"github.com/ougirez/fieldecon/internal/pkg/store/xpgx"
	"github.com/ougirez/fieldecon/internal/service/economics"
	"github.com/ougirez/fieldecon/internal/service/prices"
)

const (
	connectRetries = 10
	connectBackoff = 2 * time.Second
)

// app holds the long-lived dependencies shared by serve and import.
type app struct {
	pool      *pgxpool.Pool
	store     store.Store
	metrics   *metrics.Metrics
	economics *economics.Service
	publisher events.Publisher
	closers   []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func connectPostgres(ctx context.Context, cfg xpgx.Config) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	err := backoff.Retry(
		func() error {
			var err error
			pool, err = xpgx.NewPool(ctx, cfg)
			if err != nil {
				logger.Warnf(ctx, "postgres not ready: %s", err.Error())
			}
			return err
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(connectBackoff), connectRetries), ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{metrics: metrics.New()}

	pool, err := connectPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	a.pool = pool
	a.closers = append(a.closers, pool.Close)
	a.store = store.NewStore(pool)

	opts := []economics.Option{economics.WithMetrics(a.metrics)}

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Config)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		opts = append(opts, economics.WithCache(cache.NewRedisCache(client, cfg.Redis.Prefix, cfg.Redis.TTL)))
		logger.Infof(ctx, "totals cache enabled at %s", cfg.Redis.Addr)
	}

	a.publisher = events.NewNop()
	if cfg.Kafka.Enabled {
		a.publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Config), cfg.Kafka.Topic)
		a.closers = append(a.closers, func() {
			if err := a.publisher.Close(); err != nil {
				logger.Warnf(ctx, "publisher.Close: %s", err.Error())
			}
		})
		opts = append(opts, economics.WithPublisher(a.publisher))
		logger.Infof(ctx, "publishing totals to kafka topic %s", cfg.Kafka.Topic)
	}

	a.economics = economics.NewEconomicsService(a.store, opts...)
	return a, nil
}

func newServeCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			svc := api.NewAPIService(cfg.HTTP, a.metrics, api.Services{
				Economics: a.economics,
				Projects:  a.store,
				Prices:    prices.NewPricesService(a.store, cfg.Prices, a.metrics),
				Health:    a.pool.Ping,
			})

			errCh := make(chan error, 1)
			go func() {
				logger.Infof(ctx, "listening on %s", cfg.HTTP.Addr)
				errCh <- svc.Serve(cfg.HTTP.Addr)
			}()

			select {
			case err = <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info(context.Background(), "shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return svc.Shutdown(shutdownCtx)
		},
	}
}
