package models

import (
	"github.com/shopspring/decimal"
)

// OrderItem records one item's quantity and price within a specific order.
// UnitPrice is a point-in-time snapshot of the item's price: later price
// edits never affect existing orders. ItemID is a weak reference; if the
// item is deleted afterwards the join simply omits it.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	ItemID     uint            `gorm:"not null;index" json:"item_id"`
	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"` // quantity x unit price
	Item       *Item           `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
