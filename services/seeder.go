package services

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/asharma-dev/chai-counter-api/models"
)

// SeedItems inserts the counter's default menu when the items table is
// empty, so a fresh deployment starts with a usable inventory. Existing
// data is never touched.
func SeedItems(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Item{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		return nil
	}

	items := []models.Item{
		{Name: "Masala Tea", Category: "tea", Price: decimal.NewFromFloat(15.00), Stock: 50, LowStockThreshold: 10, Unit: "cup"},
		{Name: "Ginger Tea", Category: "tea", Price: decimal.NewFromFloat(18.00), Stock: 30, LowStockThreshold: 5, Unit: "cup"},
		{Name: "Black Tea", Category: "tea", Price: decimal.NewFromFloat(12.00), Stock: 40, LowStockThreshold: 8, Unit: "cup"},
		{Name: "Samosa", Category: "snacks", Price: decimal.NewFromFloat(12.00), Stock: 25, LowStockThreshold: 10, Unit: "piece"},
		{Name: "Pakoras", Category: "snacks", Price: decimal.NewFromFloat(20.00), Stock: 15, LowStockThreshold: 5, Unit: "plate"},
		{Name: "Biscuits", Category: "snacks", Price: decimal.NewFromFloat(5.00), Stock: 100, LowStockThreshold: 20, Unit: "packet"},
		{Name: "Cold Coffee", Category: "beverages", Price: decimal.NewFromFloat(25.00), Stock: 20, LowStockThreshold: 5, Unit: "glass"},
		{Name: "Lemonade", Category: "beverages", Price: decimal.NewFromFloat(15.00), Stock: 30, LowStockThreshold: 10, Unit: "glass"},
	}

	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}

	log.Printf("Seeded %d default items", len(items))
	return nil
}
