package model

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is a recorded BuyBook call.
type Purchase struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ISBN      string    `json:"isbn" db:"isbn"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice int       `json:"unitPrice" db:"unit_price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Amount returns quantity times unit price.
func (p Purchase) Amount() int {
	return p.Quantity * p.UnitPrice
}
