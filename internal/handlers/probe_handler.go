package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/services"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/gofiber/fiber/v2"
)

type ProbeHandler struct {
	probeService *services.ProbeService
}

func NewProbeHandler(probeService *services.ProbeService) *ProbeHandler {
	return &ProbeHandler{probeService: probeService}
}

func (h *ProbeHandler) CheckHealth(c *fiber.Ctx) error {
	appID, err := appIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.probeService.CheckHealth(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.HealthCheckResponse{
		Success:    true,
		IsHealthy:  result.Healthy,
		StatusCode: result.StatusCode,
	})
}

func (h *ProbeHandler) CheckAllHealth(c *fiber.Ctx) error {
	results, err := h.probeService.CheckAllHealth(c.UserContext(), session.FromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BatchHealthResponse{Success: true, Results: results})
}

func (h *ProbeHandler) GeneratePreview(c *fiber.Ctx) error {
	appID, err := appIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	previewURL, err := h.probeService.GeneratePreview(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PreviewResponse{Success: true, PreviewURL: previewURL})
}
