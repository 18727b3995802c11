package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/database"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status, dbStatus := "ok", "ok"
	if err := database.Ping(h.db); err != nil {
		status, dbStatus = "degraded", "unhealthy: "+err.Error()
	}

	return c.JSON(dto.ServiceHealthResponse{
		Success:   true,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
