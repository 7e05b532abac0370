package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemType classifies a cart line for pricing rules.
type ItemType string

const (
	ItemTypeElectronic ItemType = "ELECTRONIC"
	ItemTypeOther      ItemType = "OTHER"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == ItemTypeElectronic || t == ItemTypeOther
}

// Item represents a single line in a shopping cart.
type Item struct {
	Type         ItemType        `json:"type"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}

// NewItem creates an item line. The price is taken as given.
func NewItem(itemType ItemType, name string, quantity int, pricePerUnit decimal.Decimal) Item {
	return Item{
		Type:         itemType,
		Name:         name,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
	}
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() decimal.Decimal {
	return i.PricePerUnit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate checks the item before it is persisted by a store.
func (i Item) Validate() error {
	if !i.Type.Valid() || i.Name == "" {
		return fmt.Errorf("item %q: %w", i.Name, ErrInvalidItem)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("item %q: %w", i.Name, ErrInvalidQuantity)
	}
	if i.PricePerUnit.IsNegative() {
		return fmt.Errorf("item %q: %w", i.Name, ErrInvalidPrice)
	}
	return nil
}
