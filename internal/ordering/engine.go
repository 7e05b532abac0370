package ordering

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"checkout-core/internal/model"

	"github.com/rs/zerolog"
)

// Engine prices book orders against a BookDatabase and buys whatever stock allows.
type Engine struct {
	books   BookDatabase
	process BuyBookProcess
	logger  zerolog.Logger
}

// NewEngine creates an ordering engine.
func NewEngine(books BookDatabase, process BuyBookProcess, logger zerolog.Logger) *Engine {
	return &Engine{
		books:   books,
		process: process,
		logger:  logger.With().Str("component", "ordering-engine").Logger(),
	}
}

// GetPriceForCart buys the available copies of every ordered book and reports
// the total charged plus the copies that could not be supplied.
//
// A nil order yields a nil summary. Every requested quantity must be positive
// and every ISBN must resolve before any book is bought.
func (e *Engine) GetPriceForCart(ctx context.Context, order model.Order) (*model.PurchaseSummary, error) {
	if order == nil {
		return nil, nil
	}

	isbns := slices.Sorted(maps.Keys(order))

	for _, isbn := range isbns {
		if order[isbn] <= 0 {
			e.logger.Warn().
				Str("isbn", isbn).
				Int("requested", order[isbn]).
				Msg("rejecting order with non-positive quantity")
			return nil, fmt.Errorf("isbn %s: %w", isbn, model.ErrInvalidQuantity)
		}
	}

	books := make([]model.Book, len(isbns))
	for i, isbn := range isbns {
		book, err := e.books.FindByISBN(ctx, isbn)
		if err != nil {
			e.logger.Error().Err(err).Str("isbn", isbn).Msg("failed to look up book")
			return nil, fmt.Errorf("failed to look up book %s: %w", isbn, err)
		}
		books[i] = book
	}

	total := 0
	unavailable := make(map[model.Book]int)

	for i, isbn := range isbns {
		book := books[i]
		requested := order[isbn]
		available := min(book.Quantity, requested)
		if available < 0 {
			available = 0
		}

		if shortfall := requested - available; shortfall > 0 {
			unavailable[book] += shortfall
		}
		total += available * book.Price

		if err := e.process.BuyBook(ctx, book, available); err != nil {
			e.logger.Error().Err(err).Str("isbn", isbn).Int("quantity", available).Msg("failed to buy book")
			return nil, fmt.Errorf("failed to buy book %s: %w", isbn, err)
		}

		e.logger.Debug().
			Str("isbn", isbn).
			Int("requested", requested).
			Int("bought", available).
			Msg("order entry processed")
	}

	e.logger.Info().
		Int("entries", len(isbns)).
		Int("total_price", total).
		Int("unavailable_titles", len(unavailable)).
		Msg("order priced")

	return model.NewPurchaseSummary(total, unavailable), nil
}
