package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTableName(t *testing.T) {
	order := Order{}
	assert.Equal(t, "orders", order.TableName(), "Table name should be 'orders'")
}

func TestOrderItemTableName(t *testing.T) {
	orderItem := OrderItem{}
	assert.Equal(t, "order_items", orderItem.TableName(), "Table name should be 'order_items'")
}

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		valid  bool
	}{
		{"pending", StatusPending, true},
		{"in-progress", StatusInProgress, true},
		{"completed", StatusCompleted, true},
		{"cancelled", StatusCancelled, true},
		{"empty string", "", false},
		{"unknown status", "delivered", false},
		{"wrong casing", "Pending", false},
		{"underscore variant", "in_progress", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidStatus(tt.status))
		})
	}
}
