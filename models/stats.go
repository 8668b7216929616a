package models

import (
	"github.com/shopspring/decimal"
)

// DashboardStats is the derived daily view shown on the dashboard.
// It is recomputed from the stores on every request and never persisted.
type DashboardStats struct {
	TodaySales    decimal.Decimal `json:"today_sales"`
	OrdersToday   int             `json:"orders_today"`
	PendingOrders int             `json:"pending_orders"`
	LowStockItems int             `json:"low_stock_items"`
}
