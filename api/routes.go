package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the JSON API under /api. Content reads, the contact
// form and the auth endpoints are public; everything else goes through
// adminOnly.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.siteHandler.getHealth())
		r.Get("/icons", handlers.siteHandler.getIcons())

		// Auth endpoints
		r.Get("/admin-exists", handlers.authHandler.adminExists())
		r.Post("/login", handlers.authHandler.login())
		r.Post("/register", handlers.authHandler.register())
		r.Post("/logout", handlers.authHandler.logout())
		r.With(authMiddleware.authenticate).Get("/whoami", handlers.authHandler.whoami())

		// Project endpoints
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.list())
			r.Get("/by-techfield/{techfield}", handlers.projectHandler.getProjectsByTechfield())
			r.Get("/{id}", handlers.projectHandler.get())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.adminOnly)
				r.Post("/", handlers.projectHandler.create())
				r.Patch("/{id}", handlers.projectHandler.update())
				r.Delete("/{id}", handlers.projectHandler.remove())
			})
		})

		// Expertise endpoints
		r.Route("/expertise", func(r chi.Router) {
			r.Get("/", handlers.expertiseHandler.list())
			r.Get("/{id}", handlers.expertiseHandler.get())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.adminOnly)
				r.Post("/", handlers.expertiseHandler.create())
				r.Patch("/{id}", handlers.expertiseHandler.update())
				r.Delete("/{id}", handlers.expertiseHandler.remove())
			})
		})

		// Testimonial endpoints
		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", handlers.testimonialHandler.list())
			r.Get("/{id}", handlers.testimonialHandler.get())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.adminOnly)
				r.Post("/", handlers.testimonialHandler.create())
				r.Patch("/{id}", handlers.testimonialHandler.update())
				r.Delete("/{id}", handlers.testimonialHandler.remove())
			})
		})

		// Social link endpoints
		r.Route("/social-links", func(r chi.Router) {
			r.Get("/", handlers.socialLinkHandler.list())
			r.Get("/{id}", handlers.socialLinkHandler.get())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.adminOnly)
				r.Post("/", handlers.socialLinkHandler.create())
				r.Patch("/{id}", handlers.socialLinkHandler.update())
				r.Delete("/{id}", handlers.socialLinkHandler.remove())
			})
		})

		// Contact endpoints: anyone may send a message, only the admin reads them
		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", handlers.contactHandler.create())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.adminOnly)
				r.Get("/", handlers.contactHandler.list())
				r.Get("/{id}", handlers.contactHandler.get())
				r.Patch("/{id}/read", handlers.contactHandler.markRead())
				r.Delete("/{id}", handlers.contactHandler.remove())
			})
		})

		r.With(authMiddleware.adminOnly).Get("/stats", handlers.siteHandler.getStats())

		if handlers.uploadHandler != nil {
			r.With(authMiddleware.adminOnly).Post("/uploads", handlers.uploadHandler.uploadImage())
		}
	})
}
