package repository

import (
	"context"

	"checkout-core/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that the repositories use.
// This allows the repositories to be tested against pgxmock.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BookRepository defines the interface for book data access operations.
type BookRepository interface {
	// FindByISBN retrieves a single book. Unknown ISBNs yield model.ErrBookNotFound.
	FindByISBN(ctx context.Context, isbn string) (model.Book, error)

	// Upsert inserts a book or replaces its price and stock.
	Upsert(ctx context.Context, book model.Book) error

	// List retrieves all books ordered by ISBN.
	List(ctx context.Context) ([]model.Book, error)
}

// PurchaseRepository defines the interface for recording book purchases.
type PurchaseRepository interface {
	// BuyBook records a purchase and takes the copies out of stock in one transaction.
	BuyBook(ctx context.Context, book model.Book, quantity int) error

	// ListByISBN retrieves the purchases of a book, oldest first.
	ListByISBN(ctx context.Context, isbn string) ([]model.Purchase, error)
}
