package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/asharma-dev/chai-counter-api/models"
	"github.com/asharma-dev/chai-counter-api/services"
	"github.com/asharma-dev/chai-counter-api/utils"
)

// ItemController exposes the inventory endpoints
type ItemController struct {
	Items *services.ItemStore
}

// NewItemController creates an item controller over the given store
func NewItemController(items *services.ItemStore) *ItemController {
	return &ItemController{Items: items}
}

// CreateItemRequest represents the request body for creating an item.
// Price is a pointer so that a free item (price 0) still passes the
// required check, which treats value-type zeros as missing.
type CreateItemRequest struct {
	Name              string           `json:"name" binding:"required"`
	Category          string           `json:"category" binding:"required"`
	Price             *decimal.Decimal `json:"price" binding:"required"`
	Stock             int              `json:"stock" binding:"omitempty,gte=0"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty"`
	Unit              string           `json:"unit" binding:"omitempty"`
}

// UpdateItemRequest represents the request body for a partial item update
type UpdateItemRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	Price             *decimal.Decimal `json:"price"`
	Stock             *int             `json:"stock"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Unit              *string          `json:"unit"`
}

// AdjustStockRequest represents the request body for a stock adjustment.
// Delta is a pointer: a zero delta is a legitimate no-op adjustment,
// while an absent field is still rejected.
type AdjustStockRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// ListItems handles GET /api/v1/items - lists all inventory items
func (ctl *ItemController) ListItems(c *gin.Context) {
	items, err := ctl.Items.List()
	if err != nil {
		log.Printf("Failed to list items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch items",
			},
		})
		return
	}

	for i := range items {
		attachImageURL(&items[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetItem handles GET /api/v1/items/:id - fetches a single item
func (ctl *ItemController) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := ctl.Items.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ITEM_NOT_FOUND",
					"message": "Item not found",
				},
			})
			return
		}
		log.Printf("Failed to fetch item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch item",
			},
		})
		return
	}

	attachImageURL(item)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// CreateItem handles POST /api/v1/items - adds an item to the inventory
func (ctl *ItemController) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid item data",
				"details": err.Error(),
			},
		})
		return
	}

	// Stock defaults to 0, the threshold to 5, the unit to "piece"
	threshold := 5
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}
	unit := req.Unit
	if unit == "" {
		unit = "piece"
	}

	item := models.Item{
		Name:              req.Name,
		Category:          req.Category,
		Price:             *req.Price,
		Stock:             req.Stock,
		LowStockThreshold: threshold,
		Unit:              unit,
	}

	if err := ctl.Items.Create(&item); err != nil {
		log.Printf("Failed to create item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create item",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateItem handles PUT /api/v1/items/:id - partially updates an item.
// Fields absent from the body keep their current values.
func (ctl *ItemController) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid item data",
				"details": err.Error(),
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}

	item, err := ctl.Items.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ITEM_NOT_FOUND",
					"message": "Item not found",
				},
			})
			return
		}
		log.Printf("Failed to update item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update item",
			},
		})
		return
	}

	attachImageURL(item)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteItem handles DELETE /api/v1/items/:id - removes an item and its
// photo. Orders referencing the item keep their line items; the join
// output just omits the item from then on.
func (ctl *ItemController) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := ctl.Items.Get(id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to fetch item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete item",
			},
		})
		return
	}

	deleted, err := ctl.Items.Delete(id)
	if err != nil {
		log.Printf("Failed to delete item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete item",
			},
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": "Item not found",
			},
		})
		return
	}

	if item != nil && item.ImageS3Key != nil {
		if imageService := services.GetImageService(); imageService != nil {
			if err := imageService.DeleteImage(*item.ImageS3Key); err != nil {
				log.Printf("Failed to delete photo for item %d: %v", id, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item deleted successfully",
	})
}

// ListLowStockItems handles GET /api/v1/items/low-stock - lists items at
// or below their low stock threshold
func (ctl *ItemController) ListLowStockItems(c *gin.Context) {
	items, err := ctl.Items.ListLowStock()
	if err != nil {
		log.Printf("Failed to list low stock items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch low stock items",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// AdjustStock handles POST /api/v1/items/:id/stock - applies a manual
// stock adjustment (restock with a positive delta, correction with a
// negative one). Stock never goes below zero.
func (ctl *ItemController) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid stock adjustment",
				"details": err.Error(),
			},
		})
		return
	}

	item, err := ctl.Items.AdjustStock(id, *req.Delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ITEM_NOT_FOUND",
					"message": "Item not found",
				},
			})
			return
		}
		log.Printf("Failed to adjust stock for item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to adjust stock",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// UploadItemImage handles POST /api/v1/items/:id/image - attaches a
// photo to an item. Replacing a photo deletes the previous one.
func (ctl *ItemController) UploadItemImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := ctl.Items.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ITEM_NOT_FOUND",
					"message": "Item not found",
				},
			})
			return
		}
		log.Printf("Failed to fetch item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch item",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Photo storage is not configured",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required",
			},
		})
		return
	}

	s3Key, err := imageService.UploadImage(fileHeader)
	if err != nil {
		var fileErr *utils.ImageFileError
		if errors.As(err, &fileErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    fileErr.Code,
					"message": fileErr.Message,
				},
			})
			return
		}
		log.Printf("Failed to upload photo for item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload photo",
			},
		})
		return
	}

	oldKey := item.ImageS3Key
	updated, err := ctl.Items.Update(id, map[string]interface{}{"image_s3_key": s3Key})
	if err != nil {
		log.Printf("Failed to save photo key for item %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save photo",
			},
		})
		return
	}

	if oldKey != nil && *oldKey != s3Key {
		if err := imageService.DeleteImage(*oldKey); err != nil {
			log.Printf("Failed to delete replaced photo %s: %v", *oldKey, err)
		}
	}

	attachImageURL(updated)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// attachImageURL populates the computed ImageURL field from the stored
// S3 key when photo storage is configured
func attachImageURL(item *models.Item) {
	if item.ImageS3Key == nil {
		return
	}
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	url, err := imageService.GetImageURL(*item.ImageS3Key)
	if err != nil {
		log.Printf("Failed to generate photo URL for item %d: %v", item.ID, err)
		return
	}
	if url != "" {
		item.ImageURL = &url
	}
}

// parseIDParam parses the :id path parameter, writing a 400 response
// and returning ok=false when it is not a positive integer
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "ID must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}
