package routes

import (
	"talentlink/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	match   *handler.MatchHandler
	batch   *handler.BatchHandler
	quality *handler.QualityHandler
}

func NewRegistry(
	health *handler.HealthHandler,
	match *handler.MatchHandler,
	batch *handler.BatchHandler,
	quality *handler.QualityHandler,
) *Registry {
	return &Registry{health: health, match: match, batch: batch, quality: quality}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	r.match.RegisterRoutes(v1)
	r.batch.RegisterRoutes(v1)
	r.quality.RegisterRoutes(v1)
}
