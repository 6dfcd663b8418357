package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartmemory "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	cartredis "github.com/dwikikusuma/storefront/internal/cart/infra/redis"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogmemory "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	catalogmongo "github.com/dwikikusuma/storefront/internal/catalog/infra/mongo"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/mongo"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/redis"
)

// stores holds the repositories selected by CART_STORE and CATALOG_STORE
// and the connections behind them.
type stores struct {
	cart    cartapp.CartRepo
	catalog catalogapp.ProductRepo

	db      *sql.DB
	pings   []func(ctx context.Context) error
	closers []func() error
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*stores, error) {
	s := &stores{}

	switch cfg.CartStore {
	case "memory":
		s.cart = cartmemory.NewCartRepo()
	case "postgres":
		db, err := s.postgres(cfg)
		if err != nil {
			return s, err
		}
		if cfg.PostgresAutoMigrate {
			if err := cartpg.EnsureSchema(ctx, db); err != nil {
				return s, err
			}
		}
		s.cart = cartpg.NewCartRepo(db)
	case "redis":
		client, err := redis.Open(cfg.Redis)
		if err != nil {
			return s, err
		}
		s.pings = append(s.pings, func(ctx context.Context) error { return client.Ping(ctx).Err() })
		s.closers = append(s.closers, client.Close)
		s.cart = cartredis.NewCartRepo(client)
	default:
		return s, fmt.Errorf("unknown CART_STORE %q", cfg.CartStore)
	}
	log.Info("cart store ready", slog.String("store", cfg.CartStore))

	switch cfg.CatalogStore {
	case "memory":
		s.catalog = catalogmemory.NewProductRepo()
	case "postgres":
		db, err := s.postgres(cfg)
		if err != nil {
			return s, err
		}
		if cfg.PostgresAutoMigrate {
			if err := catalogpg.EnsureSchema(ctx, db); err != nil {
				return s, err
			}
		}
		s.catalog = catalogpg.NewProductRepo(db)
	case "mongo":
		db, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return s, err
		}
		s.pings = append(s.pings, func(ctx context.Context) error { return db.Client().Ping(ctx, nil) })
		s.closers = append(s.closers, func() error { return db.Client().Disconnect(context.Background()) })

		repo := catalogmongo.NewProductRepo(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return s, err
		}
		s.catalog = repo
	default:
		return s, fmt.Errorf("unknown CATALOG_STORE %q", cfg.CatalogStore)
	}
	log.Info("catalog store ready", slog.String("store", cfg.CatalogStore))

	return s, nil
}

// postgres opens the shared pool on first use.
func (s *stores) postgres(cfg config.Config) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		return nil, err
	}
	s.db = db
	s.pings = append(s.pings, db.PingContext)
	s.closers = append(s.closers, db.Close)
	return db, nil
}

func (s *stores) ready(ctx context.Context) error {
	for _, ping := range s.pings {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *stores) close(log *slog.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Warn("close store", slog.Any("err", err))
		}
	}
}
