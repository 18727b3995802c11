package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apphub/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/fingerprint"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/services"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/gofiber/fiber/v2"
)

type FingerprintHandler struct {
	identityService *services.IdentityService
	sessions        *session.Manager
}

func NewFingerprintHandler(identityService *services.IdentityService, sessions *session.Manager) *FingerprintHandler {
	return &FingerprintHandler{identityService: identityService, sessions: sessions}
}

// Submit resolves the posted browser signals to a User and binds the
// session to it.
func (h *FingerprintHandler) Submit(c *fiber.Ctx) error {
	var signals fingerprint.Signals
	if err := c.BodyParser(&signals); err != nil {
		return badRequest(c, "Invalid request body")
	}

	res, err := h.identityService.Resolve(c.UserContext(), signals)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.sessions.Bind(c, res.UserID, res.Fingerprint)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.FingerprintResponse{
		Success:     true,
		UserID:      res.UserID,
		Fingerprint: res.Fingerprint,
		IsNewUser:   res.IsNew,
		Token:       token,
	})
}
