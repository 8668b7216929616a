package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asharma-dev/chai-counter-api/services"
)

// StatsController exposes the dashboard aggregates
type StatsController struct {
	Stats *services.StatsService
}

// NewStatsController creates a stats controller over the given service
func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GetDashboardStats handles GET /api/v1/dashboard/stats - returns
// today's sales, today's order count, the pending order count and the
// low stock item count, freshly computed from the stores
func (ctl *StatsController) GetDashboardStats(c *gin.Context) {
	stats, err := ctl.Stats.Dashboard()
	if err != nil {
		log.Printf("Failed to compute dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch dashboard stats",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
