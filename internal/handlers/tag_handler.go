package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/services"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	appService *services.AppService
}

func NewTagHandler(appService *services.AppService) *TagHandler {
	return &TagHandler{appService: appService}
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	ranked, err := h.appService.Tags(c.UserContext(), session.FromCtx(c))
	if err != nil {
		return respondError(c, err)
	}

	tags := make([]dto.TagCount, len(ranked))
	for i, t := range ranked {
		tags[i] = dto.TagCount{Name: t.Name, Count: t.Count}
	}
	return c.JSON(dto.TagListResponse{Success: true, Tags: tags})
}
