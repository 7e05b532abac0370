package repository

import (
	"context"
	"fmt"

	"checkout-core/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// purchaseRepository implements the PurchaseRepository interface using PostgreSQL.
type purchaseRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

// NewPurchaseRepository creates a new PostgreSQL-backed purchase repository.
func NewPurchaseRepository(pool DBPool, logger zerolog.Logger) PurchaseRepository {
	return &purchaseRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "purchase").Logger(),
	}
}

// BuyBook records the purchase and decrements stock. A zero quantity is recorded
// without touching stock. Fails with model.ErrOutOfStock if the stored stock is
// lower than quantity.
func (r *purchaseRepository) BuyBook(ctx context.Context, book model.Book, quantity int) (err error) {
	if quantity < 0 {
		return fmt.Errorf("isbn %s: %w", book.ISBN, model.ErrInvalidQuantity)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	purchaseID := uuid.New()

	insert := `
		INSERT INTO purchases (id, isbn, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
	`
	if _, err = tx.Exec(ctx, insert, purchaseID, book.ISBN, quantity, book.Price); err != nil {
		r.logger.Error().Err(err).Str("isbn", book.ISBN).Msg("failed to insert purchase")
		return fmt.Errorf("failed to insert purchase: %w", err)
	}

	if quantity > 0 {
		update := `
			UPDATE books
			SET stock = stock - $2, updated_at = NOW()
			WHERE isbn = $1 AND stock >= $2
		`
		tag, execErr := tx.Exec(ctx, update, book.ISBN, quantity)
		if execErr != nil {
			err = execErr
			r.logger.Error().Err(err).Str("isbn", book.ISBN).Msg("failed to decrement stock")
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			err = fmt.Errorf("isbn %s: %w", book.ISBN, model.ErrOutOfStock)
			r.logger.Warn().Str("isbn", book.ISBN).Int("quantity", quantity).Msg("stock changed before purchase")
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("purchase_id", purchaseID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit purchase: %w", err)
	}

	r.logger.Debug().
		Str("purchase_id", purchaseID.String()).
		Str("isbn", book.ISBN).
		Int("quantity", quantity).
		Msg("purchase recorded")

	return nil
}

// ListByISBN retrieves the purchases of a book, oldest first.
func (r *purchaseRepository) ListByISBN(ctx context.Context, isbn string) ([]model.Purchase, error) {
	query := `
		SELECT id, isbn, quantity, unit_price, created_at
		FROM purchases
		WHERE isbn = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, isbn)
	if err != nil {
		r.logger.Error().Err(err).Str("isbn", isbn).Msg("failed to query purchases")
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	purchases := []model.Purchase{}
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.ISBN, &p.Quantity, &p.UnitPrice, &p.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase row")
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating purchase rows")
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}
