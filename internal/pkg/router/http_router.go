package router

import (
	"github.com/pagebound/BookCrate/app/controllers"
	"github.com/pagebound/BookCrate/internal/pkg/middleware"
	"github.com/pagebound/BookCrate/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerAuthRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerAuthRoutes(app *fiber.App) {
	// Brute-force protection on the login endpoint only
	app.Post("/auth/login", limiter.New(limiter.Config{Max: 10}), controllers.HandleAuthLogin)
	app.Post("/auth/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
	app.Get("/auth/me", controllers.HandleAuthMe)
}
