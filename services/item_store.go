package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/asharma-dev/chai-counter-api/models"
)

// ItemStore holds the inventory records. It is constructed once per
// process and injected into the handlers; tests build a fresh store over
// a fresh in-memory database.
type ItemStore struct {
	db *gorm.DB
}

// NewItemStore creates an item store backed by db.
func NewItemStore(db *gorm.DB) *ItemStore {
	return &ItemStore{db: db}
}

// WithTx returns a view of the store bound to tx.
func (s *ItemStore) WithTx(tx *gorm.DB) *ItemStore {
	return &ItemStore{db: tx}
}

// List returns all items, order unspecified.
func (s *ItemStore) List() ([]models.Item, error) {
	var items []models.Item
	if err := s.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Get returns the item with the given id, or gorm.ErrRecordNotFound.
func (s *ItemStore) Get(id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists a new item and assigns its id.
func (s *ItemStore) Create(item *models.Item) error {
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update merges the given fields onto the existing record. Fields absent
// from updates are left untouched. Returns the updated item or
// gorm.ErrRecordNotFound.
func (s *ItemStore) Update(id uint, updates map[string]interface{}) (*models.Item, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return item, nil
	}

	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return s.Get(id)
}

// Delete removes the item with the given id and reports whether a record
// existed.
func (s *ItemStore) Delete(id uint) (bool, error) {
	result := s.db.Delete(&models.Item{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListLowStock returns the items where stock is at or below the low
// stock threshold. The boundary is inclusive.
func (s *ItemStore) ListLowStock() ([]models.Item, error) {
	var items []models.Item
	if err := s.db.Where("stock <= low_stock_threshold").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}

// AdjustStock sets stock = max(0, stock + delta) and returns the updated
// item, or gorm.ErrRecordNotFound. This is the only mutation path for
// stock and the only place the zero floor is applied; order creation
// calls it with a negative delta inside its transaction.
//
// The clamp runs as a single UPDATE expression, so the database computes
// the new stock from the row it locks. Two concurrent adjustments to the
// same item serialize on that row lock and both land, whichever order
// they commit in. The CASE form works on both postgres and sqlite.
func (s *ItemStore) AdjustStock(id uint, delta int) (*models.Item, error) {
	result := s.db.Model(&models.Item{}).Where("id = ?", id).
		Update("stock", gorm.Expr("CASE WHEN stock + ? < 0 THEN 0 ELSE stock + ? END", delta, delta))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.Get(id)
}
