package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"checkout-core/internal/model"

	"github.com/shopspring/decimal"
)

func readCart(path string) ([]model.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart file %s: %w", path, err)
	}

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart file %s: %w", path, err)
	}
	return items, nil
}

func readOrder(path string) (model.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read order file %s: %w", path, err)
	}

	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order file %s: %w", path, err)
	}
	return order, nil
}

type checkoutResult struct {
	CartTotal *decimal.Decimal `json:"cartTotal,omitempty"`
	Purchase  *purchaseView    `json:"purchase,omitempty"`
}

type purchaseView struct {
	TotalPrice  int               `json:"totalPrice"`
	Unavailable []unavailableView `json:"unavailable"`
}

type unavailableView struct {
	model.Book
	Shortfall int `json:"shortfall"`
}

// newPurchaseView flattens a summary into a stable, ISBN-ordered form. A nil summary stays nil.
func newPurchaseView(summary *model.PurchaseSummary) *purchaseView {
	if summary == nil {
		return nil
	}

	view := &purchaseView{
		TotalPrice:  summary.TotalPrice(),
		Unavailable: []unavailableView{},
	}
	for book, shortfall := range summary.Unavailable() {
		view.Unavailable = append(view.Unavailable, unavailableView{Book: book, Shortfall: shortfall})
	}
	sort.Slice(view.Unavailable, func(i, j int) bool {
		a, b := view.Unavailable[i], view.Unavailable[j]
		if a.ISBN != b.ISBN {
			return a.ISBN < b.ISBN
		}
		return a.Price < b.Price
	})

	return view
}

func writeResult(w io.Writer, result checkoutResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
