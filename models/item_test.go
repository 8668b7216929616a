package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemTableName(t *testing.T) {
	item := Item{}
	assert.Equal(t, "items", item.TableName(), "Table name should be 'items'")
}

func TestItemIsLowStock(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		threshold int
		expected  bool
	}{
		{"well above threshold", 50, 10, false},
		{"one above threshold", 11, 10, false},
		{"exactly at threshold", 10, 10, true},
		{"below threshold", 3, 10, true},
		{"out of stock", 0, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{
				Name:              "Masala Tea",
				Price:             decimal.RequireFromString("15.00"),
				Stock:             tt.stock,
				LowStockThreshold: tt.threshold,
			}
			assert.Equal(t, tt.expected, item.IsLowStock())
		})
	}
}
