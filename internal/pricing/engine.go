package pricing

import (
	"context"
	"fmt"
	"slices"

	"checkout-core/internal/cart"
	"checkout-core/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Engine prices a shopping cart by summing the contributions of an ordered list of rules.
type Engine struct {
	cart   cart.ShoppingCart
	rules  []PriceRule
	logger zerolog.Logger
}

// NewEngine creates a pricing engine. Rules are applied in the given order.
func NewEngine(shoppingCart cart.ShoppingCart, rules []PriceRule, logger zerolog.Logger) *Engine {
	return &Engine{
		cart:   shoppingCart,
		rules:  slices.Clone(rules),
		logger: logger.With().Str("component", "pricing-engine").Logger(),
	}
}

// Rules returns a copy of the configured rules.
func (e *Engine) Rules() []PriceRule {
	return slices.Clone(e.rules)
}

// AddToCart appends item to the cart. No deduplication or validation takes place.
func (e *Engine) AddToCart(ctx context.Context, item model.Item) error {
	if err := e.cart.Add(ctx, item); err != nil {
		e.logger.Error().Err(err).Str("item", item.Name).Msg("failed to add item to cart")
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return nil
}

// Calculate returns the sum of every rule applied to the current cart lines.
// With no rules the result is zero and the cart is not read.
func (e *Engine) Calculate(ctx context.Context) (decimal.Decimal, error) {
	if len(e.rules) == 0 {
		return decimal.Zero, nil
	}

	items, err := e.cart.Items(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to read cart items")
		return decimal.Zero, fmt.Errorf("failed to read cart items: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}

	total := decimal.Zero
	for i, rule := range e.rules {
		// each rule receives its own copy of the lines
		amount := rule.PriceToAggregate(slices.Clone(items))
		total = total.Add(amount)

		e.logger.Debug().
			Int("rule_index", i).
			Str("rule", fmt.Sprintf("%T", rule)).
			Str("amount", amount.String()).
			Msg("price rule applied")
	}

	e.logger.Debug().
		Int("line_count", len(items)).
		Int("rule_count", len(e.rules)).
		Str("total", total.String()).
		Msg("cart priced")

	return total, nil
}
