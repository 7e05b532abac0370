package cart

import (
	"context"
	"errors"

	"checkout-core/internal/model"
)

// ErrStoreClosed is returned by store operations after Close.
var ErrStoreClosed = errors.New("cart store is closed")

// ShoppingCart is the ordered collection of item lines priced by the engine.
type ShoppingCart interface {
	// Add appends an item line. Duplicate names are kept as separate lines.
	Add(ctx context.Context, item model.Item) error

	// Items returns a snapshot of the lines in insertion order.
	Items(ctx context.Context) ([]model.Item, error)
}

// Store is the backing storage behind a ShoppingCart.
type Store interface {
	// Append stores a new line after all existing lines.
	Append(ctx context.Context, item model.Item) error

	// Items returns all lines in insertion order.
	Items(ctx context.Context) ([]model.Item, error)

	// ResetDatabase removes every line. The store stays usable.
	ResetDatabase(ctx context.Context) error

	// Close releases resources held by the store. Calling it more than once is safe.
	Close() error
}

// Adaptor implements ShoppingCart on top of a Store.
type Adaptor struct {
	store Store
}

// NewAdaptor creates a shopping cart backed by store.
func NewAdaptor(store Store) *Adaptor {
	return &Adaptor{store: store}
}

// Add appends item to the backing store.
func (a *Adaptor) Add(ctx context.Context, item model.Item) error {
	return a.store.Append(ctx, item)
}

// Items reads the lines from the backing store.
func (a *Adaptor) Items(ctx context.Context) ([]model.Item, error) {
	return a.store.Items(ctx)
}
