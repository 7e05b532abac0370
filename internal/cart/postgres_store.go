package cart

import (
	"context"
	"fmt"
	"sync"

	"checkout-core/internal/config"
	"checkout-core/internal/database"
	"checkout-core/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DBPool matches the methods from *pgxpool.Pool that the store uses.
// This allows the store to be tested against pgxmock.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// PostgresStore keeps the lines of one cart in the cart_items table.
type PostgresStore struct {
	pool      DBPool
	cartID    uuid.UUID
	ownsPool  bool
	logger    zerolog.Logger
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// NewPostgresStore creates a store for cartID on a shared pool. Close does not close the pool.
func NewPostgresStore(pool DBPool, cartID uuid.UUID, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		pool:   pool,
		cartID: cartID,
		logger: logger.With().Str("component", "postgres-cart-store").Str("cart_id", cartID.String()).Logger(),
	}
}

// OpenPostgresStore opens a dedicated pool, ensures the schema and returns a store for a fresh cart.
// Close releases the pool.
func OpenPostgresStore(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*PostgresStore, error) {
	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}

	s := NewPostgresStore(pool, uuid.New(), logger)
	s.ownsPool = true
	return s, nil
}

// CartID returns the identifier of the cart whose lines this store holds.
func (s *PostgresStore) CartID() uuid.UUID {
	return s.cartID
}

// Append inserts a new line.
func (s *PostgresStore) Append(ctx context.Context, item model.Item) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := item.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO cart_items (id, cart_id, item_type, name, quantity, price_per_unit)
		VALUES ($1, $2, $3, $4, $5, $6::numeric)
	`

	_, err := s.pool.Exec(ctx, query,
		uuid.New(), s.cartID, string(item.Type), item.Name, item.Quantity, item.PricePerUnit.String())
	if err != nil {
		s.logger.Error().Err(err).Str("item", item.Name).Msg("failed to insert cart item")
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	s.logger.Debug().Str("item", item.Name).Msg("cart item stored")
	return nil
}

// Items returns the lines in insertion order.
func (s *PostgresStore) Items(ctx context.Context) ([]model.Item, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := `
		SELECT item_type, name, quantity, price_per_unit::text
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY seq
	`

	rows, err := s.pool.Query(ctx, query, s.cartID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var (
			itemType string
			item     model.Item
			price    string
		)
		if err := rows.Scan(&itemType, &item.Name, &item.Quantity, &price); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item.Type = model.ItemType(itemType)
		item.PricePerUnit, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price of cart item %q: %w", item.Name, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// ResetDatabase deletes every line of this cart.
func (s *PostgresStore) ResetDatabase(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, s.cartID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to reset cart items")
		return fmt.Errorf("failed to reset cart items: %w", err)
	}

	s.logger.Debug().Int64("deleted", tag.RowsAffected()).Msg("cart reset")
	return nil
}

// Close marks the store closed and closes the pool when the store opened it.
func (s *PostgresStore) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		if s.ownsPool {
			s.pool.Close()
		}
		s.logger.Debug().Msg("cart store closed")
	})
	return nil
}

func (s *PostgresStore) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	return nil
}
