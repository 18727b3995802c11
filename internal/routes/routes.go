package routes

import (
	"net/http"

	"github.com/ahmetcoskunkizilkaya/apphub/internal/config"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apphub/internal/session"
	"github.com/ahmetcoskunkizilkaya/apphub/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

type Handlers struct {
	Fingerprint *handlers.FingerprintHandler
	App         *handlers.AppHandler
	Probe       *handlers.ProbeHandler
	Tag         *handlers.TagHandler
	User        *handlers.UserHandler
	Health      *handlers.HealthHandler
	Page        *handlers.PageHandler
}

func Setup(app *fiber.App, cfg *config.Config, sessions *session.Manager, h Handlers) {
	// Front-end
	app.Get("/", h.Page.Index)
	app.Get("/privacy", h.Page.Privacy)
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Static()),
		MaxAge: 3600,
	}))

	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit))
	api.Use(sessions.Optional())

	api.Get("/health", h.Health.Check)

	// Identity
	api.Post("/fingerprint", h.Fingerprint.Submit)
	api.Get("/user/info", session.Required(), h.User.Info)
	api.Delete("/user", session.Required(), h.User.Delete)

	// Tags over the caller's visible set
	api.Get("/tags", h.Tag.List)

	apps := api.Group("/apps")
	apps.Get("/", h.App.List)
	apps.Post("/", session.Required(), h.App.Create)

	// Must be registered before /:id routes.
	apps.Post("/batch/health", session.Required(), h.Probe.CheckAllHealth)

	apps.Get("/:id", h.App.Get)
	apps.Put("/:id", session.Required(), h.App.Update)
	apps.Delete("/:id", session.Required(), h.App.Delete)

	// Ungated, so access recording gets its own tighter limit.
	apps.Post("/:id/access", middleware.RateLimit(cfg.AccessRateLimit), h.App.RecordAccess)
	apps.Post("/:id/preview", h.Probe.GeneratePreview)
	apps.Post("/:id/health", h.Probe.CheckHealth)
}
