package catalog

import (
	"context"

	"checkout-core/internal/model"
)

// Loader defines the interface for loading catalog shards.
type Loader interface {
	// Load reads a gzipped catalog shard and returns its books in file order.
	Load(ctx context.Context, path string) ([]model.Book, error)
}
