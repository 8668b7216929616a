package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/asharma-dev/chai-counter-api/services"
)

// OrderController exposes the order endpoints
type OrderController struct {
	Orders *services.OrderStore
}

// NewOrderController creates an order controller over the given store
func NewOrderController(orders *services.OrderStore) *OrderController {
	return &OrderController{Orders: orders}
}

// OrderLineRequest is one line of a new order. Prices are not accepted
// from the client; the store snapshots the item's current price.
type OrderLineRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerName *string            `json:"customer_name"`
	Status       string             `json:"status" binding:"omitempty"`
	Items        []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders handles GET /api/v1/orders - lists all orders, most recent first
func (ctl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctl.Orders.List()
	if err != nil {
		log.Printf("Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches an order with its
// line items, each joined with its item
func (ctl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctl.Orders.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		log.Printf("Failed to fetch order %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CreateOrder handles POST /api/v1/orders - creates an order with its
// line items and decrements inventory, all atomically
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order data",
				"details": err.Error(),
			},
		})
		return
	}

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, line := range req.Items {
		lines = append(lines, services.OrderLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	order, err := ctl.Orders.Create(req.CustomerName, req.Status, lines)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Status must be one of: pending, in-progress, completed, cancelled",
				},
			})
		case errors.Is(err, services.ErrUnknownItem):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_ORDER_ITEM",
					"message": err.Error(),
				},
			})
		case errors.Is(err, services.ErrNoOrderLines), errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
		default:
			log.Printf("Failed to create order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to create order",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - moves an
// order to a new status. Unrecognized statuses are rejected.
func (ctl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
				"details": err.Error(),
			},
		})
		return
	}

	order, err := ctl.Orders.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": "Status must be one of: pending, in-progress, completed, cancelled",
				},
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
		default:
			log.Printf("Failed to update order %d status: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update order status",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrdersByStatus handles GET /api/v1/orders/status/:status - filters
// orders by exact status match
func (ctl *OrderController) ListOrdersByStatus(c *gin.Context) {
	status := c.Param("status")

	orders, err := ctl.Orders.ListByStatus(status)
	if err != nil {
		log.Printf("Failed to list orders by status %q: %v", status, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders by status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListTodaysOrders handles GET /api/v1/orders/today - lists the orders
// created since local midnight
func (ctl *OrderController) ListTodaysOrders(c *gin.Context) {
	orders, err := ctl.Orders.ListToday()
	if err != nil {
		log.Printf("Failed to list today's orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch today's orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ExportTodaysOrders handles GET /api/v1/orders/export - downloads
// today's orders as a CSV for the billing sheet
func (ctl *OrderController) ExportTodaysOrders(c *gin.Context) {
	orders, err := ctl.Orders.ListToday()
	if err != nil {
		log.Printf("Failed to export today's orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to export orders",
			},
		})
		return
	}

	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	// csv.Writer errors are sticky; one check after Flush covers every Write
	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"id", "customer_name", "status", "total_amount", "created_at", "completed_at"})
	for _, order := range orders {
		customerName := ""
		if order.CustomerName != nil {
			customerName = *order.CustomerName
		}
		completedAt := ""
		if order.CompletedAt != nil {
			completedAt = order.CompletedAt.Format(time.RFC3339)
		}
		writer.Write([]string{
			fmt.Sprintf("%d", order.ID),
			customerName,
			order.Status,
			order.TotalAmount.StringFixed(2),
			order.CreatedAt.Format(time.RFC3339),
			completedAt,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("Failed to write orders CSV: %v", err)
	}
}
