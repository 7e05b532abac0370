package events

import (
	"time"

	"checkout-core/internal/model"

	"github.com/google/uuid"
)

// PurchaseRecorded is published for every BuyBook call, including zero-copy purchases.
type PurchaseRecorded struct {
	EventID    uuid.UUID `json:"eventId"`
	ISBN       string    `json:"isbn"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int       `json:"unitPrice"`
	Amount     int       `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewPurchaseRecorded builds the event for quantity copies of book.
func NewPurchaseRecorded(book model.Book, quantity int, now time.Time) PurchaseRecorded {
	return PurchaseRecorded{
		EventID:    uuid.New(),
		ISBN:       book.ISBN,
		Quantity:   quantity,
		UnitPrice:  book.Price,
		Amount:     quantity * book.Price,
		OccurredAt: now.UTC(),
	}
}
