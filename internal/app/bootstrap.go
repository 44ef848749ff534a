package app

import (
	"fmt"
	"strings"

	"talentlink/internal/config"
	"talentlink/internal/delivery/http/handler"
	"talentlink/internal/delivery/http/middleware"
	"talentlink/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	f.Use(errMw.Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(cfg.App.AppName),
		handler.NewMatchHandler(c.Matching),
		handler.NewBatchHandler(c.Batch),
		handler.NewQualityHandler(c.Quality),
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, c *Container) (*App, func() error, error) {
	app := New(cfg, c)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
