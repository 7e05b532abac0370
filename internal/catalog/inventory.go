package catalog

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"checkout-core/internal/model"

	"github.com/rs/zerolog"
)

// Inventory is an in-memory book database built from catalog shards.
// It is read-only after construction.
type Inventory struct {
	books  map[string]model.Book
	logger zerolog.Logger
}

// InventoryConfig holds configuration for building an inventory.
type InventoryConfig struct {
	// Paths lists the shards to load. When the same ISBN appears in
	// several shards the one listed last wins.
	Paths []string
}

// DefaultInventoryConfig returns the default inventory configuration.
func DefaultInventoryConfig() *InventoryConfig {
	return &InventoryConfig{
		Paths: []string{"data/catalog/books1.gz"},
	}
}

// NewInventory loads all shards concurrently and merges them in the configured order.
func NewInventory(ctx context.Context, cfg *InventoryConfig, loader Loader, logger zerolog.Logger) (*Inventory, error) {
	if cfg == nil {
		cfg = DefaultInventoryConfig()
	}

	logger = logger.With().Str("component", "inventory").Logger()
	logger.Info().Int("shard_count", len(cfg.Paths)).Msg("loading inventory")

	type loadResult struct {
		index int
		books []model.Book
		err   error
	}

	resultChan := make(chan loadResult, len(cfg.Paths))
	var wg sync.WaitGroup

	for i, path := range cfg.Paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			books, err := loader.Load(ctx, path)
			resultChan <- loadResult{index: index, books: books, err: err}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(cfg.Paths))
	for result := range resultChan {
		results[result.index] = result
	}

	inv := &Inventory{
		books:  make(map[string]model.Book),
		logger: logger,
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().Err(result.err).Str("shard", cfg.Paths[i]).Msg("failed to load catalog shard")
			return nil, fmt.Errorf("failed to load catalog shard %s: %w", cfg.Paths[i], result.err)
		}
		for _, book := range result.books {
			inv.books[book.ISBN] = book
		}
	}

	logger.Info().Int("titles", len(inv.books)).Msg("inventory loaded")

	return inv, nil
}

// NewInventoryFromBooks builds an inventory from books already in memory.
// Later entries with the same ISBN replace earlier ones.
func NewInventoryFromBooks(books []model.Book, logger zerolog.Logger) *Inventory {
	inv := &Inventory{
		books:  make(map[string]model.Book, len(books)),
		logger: logger.With().Str("component", "inventory").Logger(),
	}
	for _, book := range books {
		inv.books[book.ISBN] = book
	}
	return inv
}

// FindByISBN returns the book with the given ISBN.
func (inv *Inventory) FindByISBN(_ context.Context, isbn string) (model.Book, error) {
	book, ok := inv.books[isbn]
	if !ok {
		inv.logger.Debug().Str("isbn", isbn).Msg("book not in inventory")
		return model.Book{}, fmt.Errorf("isbn %s: %w", isbn, model.ErrBookNotFound)
	}
	return book, nil
}

// Size returns the number of distinct titles.
func (inv *Inventory) Size() int {
	return len(inv.books)
}

// Books returns every title ordered by ISBN.
func (inv *Inventory) Books() []model.Book {
	isbns := slices.Sorted(maps.Keys(inv.books))
	out := make([]model.Book, 0, len(isbns))
	for _, isbn := range isbns {
		out = append(out, inv.books[isbn])
	}
	return out
}
