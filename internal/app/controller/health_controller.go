package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bizdir-backend/internal/middleware"
)

// Pinger checks that storage is reachable
type Pinger func(ctx context.Context) error

type HealthController struct {
	ping Pinger
}

func NewHealthController(ping Pinger) *HealthController {
	return &HealthController{ping: ping}
}

// GET /health
func (ctrl *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /api/db-health
func (ctrl *HealthController) DBHealth(c *gin.Context) {
	if err := ctrl.ping(c.Request.Context()); err != nil {
		middleware.GetLoggerFromContext(c).Error("Database health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Database is unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
