package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Subtotal(t *testing.T) {
	item := NewItem(ItemTypeOther, "Pencil", 5, decimal.NewFromFloat(1.5))

	assert.True(t, decimal.NewFromFloat(7.5).Equal(item.Subtotal()), "got %s", item.Subtotal())
}

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name        string
		item        Item
		expectedErr error
	}{
		{
			name: "Valid item",
			item: NewItem(ItemTypeElectronic, "Laptop", 1, decimal.NewFromInt(1000)),
		},
		{
			name: "Zero quantity is allowed",
			item: NewItem(ItemTypeOther, "Book", 0, decimal.NewFromInt(20)),
		},
		{
			name:        "Unknown type",
			item:        NewItem(ItemType("FOOD"), "Apple", 1, decimal.NewFromInt(1)),
			expectedErr: ErrInvalidItem,
		},
		{
			name:        "Missing name",
			item:        NewItem(ItemTypeOther, "", 1, decimal.NewFromInt(1)),
			expectedErr: ErrInvalidItem,
		},
		{
			name:        "Negative quantity",
			item:        NewItem(ItemTypeOther, "Book", -1, decimal.NewFromInt(20)),
			expectedErr: ErrInvalidQuantity,
		},
		{
			name:        "Negative price",
			item:        NewItem(ItemTypeOther, "Book", 1, decimal.NewFromInt(-20)),
			expectedErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
