package main

import (
	"context"
	"fmt"

	"checkout-core/internal/cart"
	"checkout-core/internal/catalog"
	"checkout-core/internal/config"
	"checkout-core/internal/database"
	"checkout-core/internal/events"
	"checkout-core/internal/ordering"
	"checkout-core/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// resources owns every external handle opened for one run and closes them in reverse order.
type resources struct {
	logger  zerolog.Logger
	pool    *pgxpool.Pool
	closers []func() error
}

func newResources(logger zerolog.Logger) *resources {
	return &resources{logger: logger}
}

func (r *resources) onClose(fn func() error) {
	r.closers = append(r.closers, fn)
}

// Close releases everything opened so far.
func (r *resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.logger.Warn().Err(err).Msg("failed to release resource")
		}
	}
	r.closers = nil
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
}

// database returns the shared pool, creating it and the schema on first use.
func (r *resources) database(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if r.pool != nil {
		return r.pool, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database, r.logger)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	r.pool = pool
	return pool, nil
}

func (r *resources) cartStore(ctx context.Context, cfg *config.Config) (cart.Store, error) {
	var store cart.Store

	switch cfg.Cart.Store {
	case config.StorePostgres:
		pool, err := r.database(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store = cart.NewPostgresStore(pool, uuid.New(), r.logger)
	case config.StoreRedis:
		redisStore, err := cart.OpenRedisStore(ctx, cfg.Redis, r.logger)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		store = cart.NewMemoryStore()
	}

	r.onClose(store.Close)
	return store, nil
}

func (r *resources) bookDatabase(ctx context.Context, cfg *config.Config) (ordering.BookDatabase, error) {
	if cfg.Ordering.BookSource == config.BookSourcePostgres {
		pool, err := r.database(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return repository.NewBookRepository(pool, r.logger), nil
	}

	loader, err := r.catalogLoader(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}

	return catalog.NewInventory(ctx, &catalog.InventoryConfig{Paths: cfg.Catalog.Files}, loader, r.logger)
}

// catalogLoader reads shards from S3 when enabled, with the local file system as fallback.
func (r *resources) catalogLoader(ctx context.Context, cfg config.CatalogConfig) (catalog.Loader, error) {
	fileLoader := catalog.NewFileLoader(r.logger)
	if !cfg.S3.Enabled {
		r.logger.Info().Msg("using local file system for catalog shards (S3 disabled)")
		return fileLoader, nil
	}

	s3Loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, r.logger)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader, nil
	}

	return catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, r.logger), nil
}

func (r *resources) purchaseProcess(ctx context.Context, cfg *config.Config, books ordering.BookDatabase) (ordering.BuyBookProcess, error) {
	switch cfg.Ordering.PurchaseSink {
	case config.SinkPostgres:
		pool, err := r.database(ctx, cfg)
		if err != nil {
			return nil, err
		}
		// purchases reference the books table, so catalog titles are synced first
		if inv, ok := books.(*catalog.Inventory); ok {
			if err := syncInventory(ctx, repository.NewBookRepository(pool, r.logger), inv); err != nil {
				return nil, err
			}
		}
		return repository.NewPurchaseRepository(pool, r.logger), nil
	case config.SinkKafka:
		publisher := events.NewPurchasePublisher(
			events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.PurchaseTopic),
			cfg.Kafka.PurchaseTopic,
			r.logger,
		)
		r.onClose(publisher.Close)
		return publisher, nil
	default:
		return ordering.NewLogProcess(r.logger), nil
	}
}

func syncInventory(ctx context.Context, repo repository.BookRepository, inv *catalog.Inventory) error {
	for _, book := range inv.Books() {
		if err := repo.Upsert(ctx, book); err != nil {
			return fmt.Errorf("failed to sync catalog into database: %w", err)
		}
	}
	return nil
}
