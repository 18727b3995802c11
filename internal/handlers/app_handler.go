package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/services"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppHandler struct {
	appService *services.AppService
}

func NewAppHandler(appService *services.AppService) *AppHandler {
	return &AppHandler{appService: appService}
}

func (h *AppHandler) List(c *fiber.Ctx) error {
	r := session.FromCtx(c)
	apps, err := h.appService.List(c.UserContext(), r)
	if err != nil {
		return respondError(c, err)
	}

	var userID *uuid.UUID
	if r.Authenticated() {
		userID = &r.UserID
	}
	return c.JSON(dto.AppListResponse{Success: true, Apps: apps, UserID: userID})
}

func (h *AppHandler) Get(c *fiber.Ctx) error {
	appID, err := appIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	app, err := h.appService.Get(c.UserContext(), session.FromCtx(c), appID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AppResponse{Success: true, App: app})
}

func (h *AppHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAppRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	app, err := h.appService.Create(c.UserContext(), session.FromCtx(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AppResponse{Success: true, App: app})
}

func (h *AppHandler) Update(c *fiber.Ctx) error {
	appID, err := appIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateAppRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	app, err := h.appService.Update(c.UserContext(), session.FromCtx(c), appID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AppResponse{Success: true, App: app})
}

func (h *AppHandler) Delete(c *fiber.Ctx) error {
	appID, err := appIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.appService.Delete(c.UserContext(), session.FromCtx(c), appID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AppHandler) RecordAccess(c *fiber.Ctx) error {
	appID, err := appIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	clicks, err := h.appService.RecordAccess(c.UserContext(), appID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AccessResponse{Success: true, ClickCount: clicks})
}
