package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes wires the public listing routes, the login flow and
// the admin-only mutation routes.
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/success-stories", handlers.storyHandler.listStories())

		r.Post("/login", handlers.authHandler.login())
		r.Post("/logout", handlers.authHandler.logout())
		r.Get("/session", handlers.authHandler.session())
	})

	// Admin-only mutation routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.requireAdmin)

		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/success-story", handlers.storyHandler.createStory())
		r.Put("/success-story/{storyID}", handlers.storyHandler.updateStory())
		r.Delete("/success-story/{storyID}", handlers.storyHandler.deleteStory())
	})
}
