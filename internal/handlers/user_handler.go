package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/services"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	appService      *services.AppService
	identityService *services.IdentityService
	sessions        *session.Manager
}

func NewUserHandler(appService *services.AppService, identityService *services.IdentityService, sessions *session.Manager) *UserHandler {
	return &UserHandler{appService: appService, identityService: identityService, sessions: sessions}
}

func (h *UserHandler) Info(c *fiber.Ctx) error {
	info, err := h.appService.GetUserInfo(c.UserContext(), session.FromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}

// Delete removes the caller's User with its Apps and ends the session.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	r := session.FromCtx(c)
	if !r.Authenticated() {
		return respondError(c, services.ErrUnauthenticated)
	}
	if err := h.identityService.DeleteUser(c.UserContext(), r.UserID); err != nil {
		return respondError(c, err)
	}
	h.sessions.Clear(c)
	return c.JSON(dto.SuccessResponse{Success: true})
}
