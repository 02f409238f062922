package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)

		r.Post("/users", h.signup)
		r.Post("/users/login", h.login)
		r.Get("/users/{id}/avatar", h.getAvatar)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/users/logout", h.logout)
		r.Post("/users/logoutAll", h.logoutAll)

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", h.me)
			r.Patch("/", h.updateMe)
			r.Delete("/", h.deleteMe)
			r.Get("/avatar", h.getMyAvatar)
			r.Post("/avatar", h.uploadAvatar)
			r.Delete("/avatar", h.deleteAvatar)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.createTask)
			r.Get("/", h.listTasks)
			r.Get("/{id}", h.getTask)
			r.Patch("/{id}", h.updateTask)
			r.Delete("/{id}", h.deleteTask)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
