package repository

import (
	"context"
	"errors"
	"fmt"

	"checkout-core/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// bookRepository implements the BookRepository interface using PostgreSQL.
type bookRepository struct {
	pool   DBPool
	logger zerolog.Logger
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(pool DBPool, logger zerolog.Logger) BookRepository {
	return &bookRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "book").Logger(),
	}
}

// FindByISBN retrieves a single book by its ISBN.
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	query := `
		SELECT isbn, price, stock
		FROM books
		WHERE isbn = $1
	`

	var b model.Book
	err := r.pool.QueryRow(ctx, query, isbn).Scan(&b.ISBN, &b.Price, &b.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("isbn", isbn).Msg("book not found")
			return model.Book{}, fmt.Errorf("isbn %s: %w", isbn, model.ErrBookNotFound)
		}
		r.logger.Error().Err(err).Str("isbn", isbn).Msg("failed to query book")
		return model.Book{}, fmt.Errorf("failed to query book: %w", err)
	}

	return b, nil
}

// Upsert inserts a book or replaces its price and stock.
func (r *bookRepository) Upsert(ctx context.Context, book model.Book) error {
	if book.Price < 0 {
		return fmt.Errorf("isbn %s: %w", book.ISBN, model.ErrInvalidPrice)
	}
	if book.Quantity < 0 {
		return fmt.Errorf("isbn %s: %w", book.ISBN, model.ErrInvalidQuantity)
	}

	query := `
		INSERT INTO books (isbn, price, stock)
		VALUES ($1, $2, $3)
		ON CONFLICT (isbn) DO UPDATE
		SET price = EXCLUDED.price, stock = EXCLUDED.stock, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, book.ISBN, book.Price, book.Quantity); err != nil {
		r.logger.Error().Err(err).Str("isbn", book.ISBN).Msg("failed to upsert book")
		return fmt.Errorf("failed to upsert book: %w", err)
	}

	return nil
}

// List retrieves all books ordered by ISBN.
func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	query := `
		SELECT isbn, price, stock
		FROM books
		ORDER BY isbn
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query books")
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ISBN, &b.Price, &b.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan book row")
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating book rows")
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}
