package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recognized order statuses. Status is a closed set: anything else is
// rejected at the API boundary.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Order represents a single customer transaction at the counter
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CustomerName *string         `gorm:"size:255" json:"customer_name"`                    // optional, walk-in orders have none
	Status       string          `gorm:"size:50;not null;default:'pending'" json:"status"` // pending, in-progress, completed, cancelled
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`  // sum of line totals at creation time
	Items        []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at"` // set on transition to completed
}

// IsValidStatus reports whether s is one of the recognized order statuses
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
