package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/asharma-dev/chai-counter-api/models"
	"github.com/asharma-dev/chai-counter-api/services"
)

func setupOrderControllers(t *testing.T) (*services.ItemStore, *services.OrderStore, *OrderController) {
	t.Helper()

	db := setupItemTestDB(t)
	items := services.NewItemStore(db)
	orders := services.NewOrderStore(db, items)
	return items, orders, NewOrderController(orders)
}

func assertAmount(t *testing.T, expected string, raw interface{}) {
	t.Helper()

	amount, err := decimal.NewFromString(raw.(string))
	assert.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString(expected)),
		"expected amount %s, got %s", expected, amount)
}

func TestCreateOrder(t *testing.T) {
	items, _, ctl := setupOrderControllers(t)

	tea := seedTestItem(t, items, "Masala Tea", "15.00", 50, 10)
	samosa := seedTestItem(t, items, "Samosa", "12.00", 25, 10)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create order",
			requestBody: map[string]interface{}{
				"customer_name": "Ravi",
				"items": []map[string]interface{}{
					{"item_id": tea.ID, "quantity": 3},
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Ravi", data["customer_name"])
				assert.Equal(t, "pending", data["status"])
				assertAmount(t, "45.00", data["total_amount"])
				assert.Nil(t, data["completed_at"])

				lines := data["items"].([]interface{})
				assert.Len(t, lines, 1)
				line := lines[0].(map[string]interface{})
				assert.Equal(t, float64(3), line["quantity"])
				assertAmount(t, "15.00", line["unit_price"])
				assertAmount(t, "45.00", line["total_price"])

				// The line item comes joined with its item
				itemData := line["item"].(map[string]interface{})
				assert.Equal(t, "Masala Tea", itemData["name"])
			},
		},
		{
			name: "Multiple lines sum into the total",
			requestBody: map[string]interface{}{
				"items": []map[string]interface{}{
					{"item_id": tea.ID, "quantity": 1},
					{"item_id": samosa.ID, "quantity": 2},
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assertAmount(t, "39.00", data["total_amount"])
				assert.Nil(t, data["customer_name"])
			},
		},
		{
			name: "Fail with empty item list",
			requestBody: map[string]interface{}{
				"items": []map[string]interface{}{},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with zero quantity",
			requestBody: map[string]interface{}{
				"items": []map[string]interface{}{
					{"item_id": tea.ID, "quantity": 0},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unknown item",
			requestBody: map[string]interface{}{
				"items": []map[string]interface{}{
					{"item_id": 99999, "quantity": 1},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_ORDER_ITEM",
		},
		{
			name: "Fail with unrecognized status",
			requestBody: map[string]interface{}{
				"status": "shipped",
				"items": []map[string]interface{}{
					{"item_id": tea.ID, "quantity": 1},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "INVALID_STATUS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/orders", ctl.CreateOrder)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	items, _, ctl := setupOrderControllers(t)

	tea := seedTestItem(t, items, "Masala Tea", "15.00", 50, 10)

	router := setupTestRouter()
	router.POST("/orders", ctl.CreateOrder)

	body, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"item_id": tea.ID, "quantity": 3},
		},
	})
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	got, err := items.Get(tea.ID)
	assert.NoError(t, err)
	assert.Equal(t, 47, got.Stock)
}

func TestGetOrder(t *testing.T) {
	items, orders, ctl := setupOrderControllers(t)

	tea := seedTestItem(t, items, "Masala Tea", "15.00", 50, 10)
	order, err := orders.Create(nil, "", []services.OrderLine{{ItemID: tea.ID, Quantity: 2}})
	assert.NoError(t, err)

	router := setupTestRouter()
	router.GET("/orders/:id", ctl.GetOrder)

	t.Run("existing order", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assertAmount(t, "30.00", data["total_amount"])

		lines := data["items"].([]interface{})
		assert.Len(t, lines, 1)
	})

	t.Run("missing order", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/orders/99999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "ORDER_NOT_FOUND", errorData["code"])
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	items, orders, ctl := setupOrderControllers(t)

	tea := seedTestItem(t, items, "Masala Tea", "15.00", 50, 10)
	order, err := orders.Create(nil, "", []services.OrderLine{{ItemID: tea.ID, Quantity: 1}})
	assert.NoError(t, err)

	router := setupTestRouter()
	router.PUT("/orders/:id/status", ctl.UpdateOrderStatus)

	tests := []struct {
		name           string
		orderID        string
		status         string
		expectedStatus int
		expectedError  string
	}{
		{"move to in-progress", fmt.Sprintf("%d", order.ID), "in-progress", http.StatusOK, ""},
		{"complete the order", fmt.Sprintf("%d", order.ID), "completed", http.StatusOK, ""},
		{"reject unknown status", fmt.Sprintf("%d", order.ID), "delivered", http.StatusBadRequest, "INVALID_STATUS"},
		{"missing order", "99999", "completed", http.StatusNotFound, "ORDER_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]interface{}{"status": tt.status})
			req, _ := http.NewRequest(http.MethodPut, "/orders/"+tt.orderID+"/status", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			data := response["data"].(map[string]interface{})
			assert.Equal(t, tt.status, data["status"])
			if tt.status == models.StatusCompleted {
				assert.NotNil(t, data["completed_at"])
			}
		})
	}
}

func TestListOrdersByStatus(t *testing.T) {
	items, orders, ctl := setupOrderControllers(t)

	tea := seedTestItem(t, items, "Masala Tea", "15.00", 50, 10)
	_, err := orders.Create(nil, "", []services.OrderLine{{ItemID: tea.ID, Quantity: 1}})
	assert.NoError(t, err)
	second, err := orders.Create(nil, "", []services.OrderLine{{ItemID: tea.ID, Quantity: 1}})
	assert.NoError(t, err)
	_, err = orders.UpdateStatus(second.ID, models.StatusCompleted)
	assert.NoError(t, err)

	router := setupTestRouter()
	router.GET("/orders/status/:status", ctl.ListOrdersByStatus)

	req, _ := http.NewRequest(http.MethodGet, "/orders/status/pending", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestListTodaysOrders(t *testing.T) {
	items, orders, ctl := setupOrderControllers(t)

	tea := seedTestItem(t, items, "Masala Tea", "15.00", 50, 10)
	_, err := orders.Create(nil, "", []services.OrderLine{{ItemID: tea.ID, Quantity: 1}})
	assert.NoError(t, err)

	router := setupTestRouter()
	router.GET("/orders/today", ctl.ListTodaysOrders)

	req, _ := http.NewRequest(http.MethodGet, "/orders/today", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestExportTodaysOrders(t *testing.T) {
	items, orders, ctl := setupOrderControllers(t)

	tea := seedTestItem(t, items, "Masala Tea", "15.00", 50, 10)
	_, err := orders.Create(strPtrTest("Ravi"), "", []services.OrderLine{{ItemID: tea.ID, Quantity: 2}})
	assert.NoError(t, err)

	router := setupTestRouter()
	router.GET("/orders/export", ctl.ExportTodaysOrders)

	req, _ := http.NewRequest(http.MethodGet, "/orders/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2, "Header plus one order row")
	assert.Contains(t, lines[0], "total_amount")
	assert.Contains(t, lines[1], "Ravi")
	assert.Contains(t, lines[1], "30.00")
}

func strPtrTest(s string) *string {
	return &s
}
