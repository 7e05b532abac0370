package ordering

import (
	"context"

	"checkout-core/internal/model"
)

// BookDatabase looks up books by ISBN.
type BookDatabase interface {
	// FindByISBN returns the book with the given ISBN.
	// An unknown ISBN yields an error wrapping model.ErrBookNotFound.
	FindByISBN(ctx context.Context, isbn string) (model.Book, error)
}

// BuyBookProcess performs the purchase of copies of a book.
type BuyBookProcess interface {
	// BuyBook is called once per order entry, also when quantity is zero.
	BuyBook(ctx context.Context, book model.Book, quantity int) error
}

// ProcessFunc adapts a plain function to BuyBookProcess.
type ProcessFunc func(ctx context.Context, book model.Book, quantity int) error

// BuyBook calls f.
func (f ProcessFunc) BuyBook(ctx context.Context, book model.Book, quantity int) error {
	return f(ctx, book, quantity)
}
