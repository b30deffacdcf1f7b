package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Skotchmaster/bazar/internal/config"
	"github.com/Skotchmaster/bazar/internal/events"
	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/payments"
	"github.com/Skotchmaster/bazar/internal/search"
	"github.com/Skotchmaster/bazar/internal/service"
	"github.com/Skotchmaster/bazar/internal/store"
	"github.com/Skotchmaster/bazar/internal/store/mongostore"
	"github.com/Skotchmaster/bazar/internal/store/sqlstore"
	"github.com/Skotchmaster/bazar/internal/tokens"
)

// app holds everything the commands share.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  store.Store
	events events.Publisher
	index  *search.Index
	tokens *tokens.Issuer

	users    *service.UserService
	catalog  *service.CatalogService
	orders   *service.OrderService
	payments *service.PaymentService
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		st, err := mongostore.Open(ctx, cfg.MongoConnString(), cfg.DBName)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.StorePostgres, config.StoreSQLite:
		driver := sqlstore.DriverPostgres
		if cfg.StoreDriver == config.StoreSQLite {
			driver = sqlstore.DriverSQLite
		}
		st, err := sqlstore.Open(ctx, driver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		events: events.Noop{},
		tokens: tokens.NewIssuer([]byte(cfg.AccessTokenSecret), cfg.TokenTTL),
	}

	if len(cfg.KafkaBrokers) > 0 {
		a.events = events.NewProducer(cfg.KafkaBrokers, logger)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		a.index = search.NewIndex(es, cfg.ESIndex)
		logger.Info("search_enabled", "index", cfg.ESIndex)
	}

	a.users = &service.UserService{Store: st, Events: a.events}
	a.catalog = &service.CatalogService{Store: st, Events: a.events}
	if a.index != nil {
		a.catalog.Index = a.index
	}
	a.orders = &service.OrderService{Store: st, Events: a.events}
	a.payments = &service.PaymentService{Store: st, Events: a.events}
	if cfg.StripeSecretKey != "" {
		a.payments.Gateway = payments.NewGateway(cfg.StripeSecretKey, cfg.PaymentCurrency)
	}

	return a, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.events.Close(); err != nil {
		a.logger.Warn("close_events_error", "error", err)
	}
	if err := a.store.Close(ctx); err != nil {
		a.logger.Warn("close_store_error", "error", err)
	}
}
