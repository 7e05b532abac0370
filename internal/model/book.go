package model

import "maps"

// Book represents a title in the book inventory.
// Quantity is the number of copies in stock.
type Book struct {
	ISBN     string `json:"isbn" db:"isbn"`
	Price    int    `json:"price" db:"price"`
	Quantity int    `json:"quantity" db:"stock"`
}

// Order maps an ISBN to the requested number of copies.
// A nil Order means no order was submitted.
type Order map[string]int

// PurchaseSummary is the outcome of pricing an order against the inventory.
// It is immutable once built.
type PurchaseSummary struct {
	totalPrice  int
	unavailable map[Book]int
}

// NewPurchaseSummary builds a summary. Entries with a non-positive shortfall are dropped.
func NewPurchaseSummary(totalPrice int, unavailable map[Book]int) *PurchaseSummary {
	u := make(map[Book]int, len(unavailable))
	for book, shortfall := range unavailable {
		if shortfall > 0 {
			u[book] = shortfall
		}
	}
	return &PurchaseSummary{
		totalPrice:  totalPrice,
		unavailable: u,
	}
}

// TotalPrice returns the amount charged for the copies actually bought.
func (s *PurchaseSummary) TotalPrice() int {
	return s.totalPrice
}

// Unavailable returns a copy of the book to shortfall mapping.
func (s *PurchaseSummary) Unavailable() map[Book]int {
	return maps.Clone(s.unavailable)
}

// Shortfall returns the unfulfilled quantity for book, if any.
func (s *PurchaseSummary) Shortfall(book Book) (int, bool) {
	n, ok := s.unavailable[book]
	return n, ok
}
