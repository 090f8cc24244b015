package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusActive, DeriveStatus(StatusOutOfStock, 5))
	assert.Equal(t, StatusOutOfStock, DeriveStatus(StatusActive, 0))
	assert.Equal(t, StatusOutOfStock, DeriveStatus(StatusActive, -1))
}

func TestDeriveStatusKeepsDiscontinued(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusDiscontinued, DeriveStatus(StatusDiscontinued, 100))
	assert.Equal(t, StatusDiscontinued, DeriveStatus(StatusDiscontinued, 0))
}

func TestPurchasable(t *testing.T) {
	t.Parallel()

	p := Product{IsActive: true, Status: StatusActive}
	assert.True(t, p.Purchasable())

	p.Status = StatusOutOfStock
	assert.True(t, p.Purchasable())

	p.Status = StatusDiscontinued
	assert.False(t, p.Purchasable())

	p = Product{IsActive: false, Status: StatusActive}
	assert.False(t, p.Purchasable())
}

func TestCrossedLowStock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		change StockChange
		want   bool
	}{
		{"crosses threshold", StockChange{Before: 6, After: 5, MinStock: 5}, true},
		{"already below", StockChange{Before: 5, After: 4, MinStock: 5}, false},
		{"stays above", StockChange{Before: 10, After: 8, MinStock: 5}, false},
		{"drops to zero", StockChange{Before: 6, After: 0, MinStock: 5}, false},
		{"restore upward", StockChange{Before: 4, After: 8, MinStock: 5}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.change.CrossedLowStock())
		})
	}
}
