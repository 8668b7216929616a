package services

import (
	"github.com/shopspring/decimal"

	"github.com/asharma-dev/chai-counter-api/models"
)

// StatsService derives the dashboard aggregates from the two stores. It
// keeps no state of its own: every call recomputes from current store
// contents.
type StatsService struct {
	orders *OrderStore
	items  *ItemStore
}

// NewStatsService creates a stats service over the given stores.
func NewStatsService(orders *OrderStore, items *ItemStore) *StatsService {
	return &StatsService{orders: orders, items: items}
}

// Dashboard returns today's sales and order count, the pending order
// count and the low stock item count. Today's sales sums every order
// created today regardless of status, cancelled included; that matches
// the counter's current bookkeeping and is kept until the owners decide
// otherwise.
func (s *StatsService) Dashboard() (*models.DashboardStats, error) {
	todays, err := s.orders.ListToday()
	if err != nil {
		return nil, err
	}

	pending, err := s.orders.ListByStatus(models.StatusPending)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.items.ListLowStock()
	if err != nil {
		return nil, err
	}

	sales := decimal.Zero
	for _, order := range todays {
		sales = sales.Add(order.TotalAmount)
	}

	return &models.DashboardStats{
		TodaySales:    sales,
		OrdersToday:   len(todays),
		PendingOrders: len(pending),
		LowStockItems: len(lowStock),
	}, nil
}
