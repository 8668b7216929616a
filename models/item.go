package models

import (
	"github.com/shopspring/decimal"
)

// Item represents a stocked product sold at the counter
type Item struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	Category          string          `gorm:"size:100;not null" json:"category"` // tea, snacks, beverages, other
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock             int             `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int             `gorm:"not null;default:5" json:"low_stock_threshold"`
	Unit              string          `gorm:"size:50;not null;default:'piece'" json:"unit"` // cup, piece, plate, glass, packet
	ImageS3Key        *string         `json:"image_s3_key,omitempty"`                       // nullable, S3 key for the item photo
	ImageURL          *string         `gorm:"-" json:"image_url,omitempty"`                 // computed field, presigned URL for the photo
}

// IsLowStock reports whether the item is at or below its low stock threshold
func (i *Item) IsLowStock() bool {
	return i.Stock <= i.LowStockThreshold
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}
