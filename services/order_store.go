package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/asharma-dev/chai-counter-api/models"
)

// OrderLine is the caller's request for one line of a new order. Prices
// are never taken from the caller: the store snapshots the item's
// current price when the order is created.
type OrderLine struct {
	ItemID   uint
	Quantity int
}

// OrderStore holds orders and their line items.
type OrderStore struct {
	db    *gorm.DB
	items *ItemStore
}

// NewOrderStore creates an order store backed by db, decrementing
// inventory through items.
func NewOrderStore(db *gorm.DB, items *ItemStore) *OrderStore {
	return &OrderStore{db: db, items: items}
}

// List returns all orders, most recent first.
func (s *OrderStore) List() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Get returns the order with its line items, each joined with its
// referenced item, or gorm.ErrRecordNotFound. Line items whose item was
// deleted later keep their snapshot prices; the join field is simply nil.
func (s *OrderStore) Get(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items.Item").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Create persists a new order together with its line items and
// decrements inventory, all in one transaction: a failure on any line
// rolls the whole order back. The order total is the exact decimal sum
// of the line totals, each computed from the item's price at this
// moment.
func (s *OrderStore) Create(customerName *string, status string, lines []OrderLine) (*models.Order, error) {
	if status == "" {
		status = models.StatusPending
	}
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if len(lines) == 0 {
		return nil, ErrNoOrderLines
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	order := models.Order{
		CustomerName: customerName,
		Status:       status,
		TotalAmount:  decimal.Zero,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		txItems := s.items.WithTx(tx)

		// Resolve every referenced item up front so a bad reference
		// rejects the order before anything is written.
		orderItems := make([]models.OrderItem, 0, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			item, err := txItems.Get(line.ItemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: item %d", ErrUnknownItem, line.ItemID)
				}
				return err
			}

			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			orderItems = append(orderItems, models.OrderItem{
				ItemID:     item.ID,
				Quantity:   line.Quantity,
				UnitPrice:  item.Price,
				TotalPrice: lineTotal,
			})
			total = total.Add(lineTotal)
		}
		order.TotalAmount = total

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
			if err := tx.Create(&orderItems[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			if _, err := txItems.AdjustStock(orderItems[i].ItemID, -orderItems[i].Quantity); err != nil {
				return fmt.Errorf("failed to decrement stock for item %d: %w", orderItems[i].ItemID, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(order.ID)
}

// UpdateStatus sets the order status and returns the updated order, or
// gorm.ErrRecordNotFound. A transition to completed stamps CompletedAt
// with the current time, unconditionally refreshing any earlier stamp.
// Other statuses leave an existing CompletedAt in place.
func (s *OrderStore) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.StatusCompleted {
		now := time.Now()
		updates["completed_at"] = &now
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := s.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByStatus returns the orders whose status exactly matches status.
func (s *OrderStore) ListByStatus(status string) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("status = ?", status).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders by status: %w", err)
	}
	return orders, nil
}

// ListToday returns the orders created within [local midnight, next
// local midnight). An order stamped exactly at midnight counts as today.
func (s *OrderStore) ListToday() ([]models.Order, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var orders []models.Order
	if err := s.db.Where("created_at >= ? AND created_at < ?", start, end).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list today's orders: %w", err)
	}
	return orders, nil
}
