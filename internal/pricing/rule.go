package pricing

import (
	"checkout-core/internal/model"

	"github.com/shopspring/decimal"
)

// PriceRule contributes an amount to the final cart price.
// Implementations must be deterministic and must not modify items.
type PriceRule interface {
	PriceToAggregate(items []model.Item) decimal.Decimal
}

// RuleFunc adapts an ordinary function to PriceRule.
type RuleFunc func(items []model.Item) decimal.Decimal

// PriceToAggregate calls f(items).
func (f RuleFunc) PriceToAggregate(items []model.Item) decimal.Decimal {
	return f(items)
}

// Delivery fee bands, keyed by the number of item lines.
var (
	deliveryFeeSmall  = decimal.NewFromInt(5)
	deliveryFeeMedium = decimal.RequireFromString("12.5")
	deliveryFeeLarge  = decimal.NewFromInt(20)

	electronicsSurcharge = decimal.RequireFromString("7.5")
)

// RegularCost sums quantity times unit price over all lines.
type RegularCost struct{}

// PriceToAggregate implements PriceRule.
func (RegularCost) PriceToAggregate(items []model.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// DeliveryPrice charges a fee that depends only on the number of lines,
// not on the quantities in them.
type DeliveryPrice struct{}

// PriceToAggregate implements PriceRule.
func (DeliveryPrice) PriceToAggregate(items []model.Item) decimal.Decimal {
	switch n := len(items); {
	case n == 0:
		return decimal.Zero
	case n <= 3:
		return deliveryFeeSmall
	case n <= 10:
		return deliveryFeeMedium
	default:
		return deliveryFeeLarge
	}
}

// ExtraCostForElectronics adds a flat surcharge when any line is electronic.
type ExtraCostForElectronics struct{}

// PriceToAggregate implements PriceRule.
func (ExtraCostForElectronics) PriceToAggregate(items []model.Item) decimal.Decimal {
	for _, item := range items {
		if item.Type == model.ItemTypeElectronic {
			return electronicsSurcharge
		}
	}
	return decimal.Zero
}

// DefaultRules returns the standard rule set in evaluation order.
func DefaultRules() []PriceRule {
	return []PriceRule{RegularCost{}, DeliveryPrice{}, ExtraCostForElectronics{}}
}
