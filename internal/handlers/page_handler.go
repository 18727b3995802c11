package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apphub/web"
	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	index []byte
}

func NewPageHandler() (*PageHandler, error) {
	index, err := web.Index()
	if err != nil {
		return nil, err
	}
	return &PageHandler{index: index}, nil
}

func (h *PageHandler) Index(c *fiber.Ctx) error {
	return c.Type("html").Send(h.index)
}

func (h *PageHandler) Privacy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy - AppHub</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Privacy</h1>
<h2>What we collect</h2>
<p>AppHub has no accounts. Your browser reports its user agent, screen resolution, timezone, language, platform, plugin names and two rendering fingerprints. We hash them into an identifier and keep the raw values next to it.</p>
<h2>Session</h2>
<p>A signed cookie keeps you recognised between visits. It holds your identifier and nothing else.</p>
<h2>Deleting your data</h2>
<p>Send <code>DELETE /api/user</code> to remove your identity and every app you added.</p>
</body></html>`)
}
