package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"

	"shoppingagent/app/config"
	"shoppingagent/app/service/dialogue"
	"shoppingagent/app/service/session"
)

// Server exposes the dialogue core over HTTP for the study frontend.
type Server struct {
	cfg      *config.Config
	sessions *session.Manager
	dialogue *dialogue.Service
	app      *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:      do.MustInvoke[*config.Config](di),
		sessions: do.MustInvoke[*session.Manager](di),
		dialogue: do.MustInvoke[*dialogue.Service](di),
	}

	app := fiber.New(fiber.Config{
		AppName: "shoppingagent",
	})

	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api")

	api.Get("/products", s.listProducts)

	api.Post("/sessions", s.createSession)
	api.Get("/sessions/:id", s.getSession)
	api.Post("/sessions/:id/messages", s.postMessage)

	api.Post("/sessions/:id/memories", s.addMemory)
	api.Put("/sessions/:id/memories/:index", s.updateMemory)
	api.Delete("/sessions/:id/memories/:index", s.deleteMemory)

	api.Post("/sessions/:id/recommendation/confirm", s.confirmRecommendation)
	api.Post("/sessions/:id/products/select", s.selectProduct)
	api.Post("/sessions/:id/products/back", s.backToList)
	api.Post("/sessions/:id/decision", s.finalDecision)

	s.app = app

	return s, nil
}

func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.app.Listen(s.cfg.Server.Addr)
	})

	g.Go(func() error {
		<-ctx.Done()

		return s.app.ShutdownWithTimeout(5 * time.Second)
	})

	return g.Wait()
}
