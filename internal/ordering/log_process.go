package ordering

import (
	"context"

	"checkout-core/internal/model"

	"github.com/rs/zerolog"
)

// LogProcess is a BuyBookProcess that only records purchases in the log.
type LogProcess struct {
	logger zerolog.Logger
}

// NewLogProcess creates a logging purchase process.
func NewLogProcess(logger zerolog.Logger) *LogProcess {
	return &LogProcess{logger: logger.With().Str("component", "log-purchase").Logger()}
}

// BuyBook logs the purchase.
func (p *LogProcess) BuyBook(_ context.Context, book model.Book, quantity int) error {
	p.logger.Info().
		Str("isbn", book.ISBN).
		Int("unit_price", book.Price).
		Int("quantity", quantity).
		Msg("book purchased")
	return nil
}
