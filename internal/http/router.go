package router

import (
	"net/http"
	"task-tracker/internal/http/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func New(handler *handlers.TaskHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)

	r.Get("/", handler.Index)
	r.Post("/", handler.Index)
	r.Get("/complete/{id}", handler.Complete)
	r.Post("/complete/{id}", handler.Complete)
	r.Get("/delete/{id}", handler.Delete)
	r.Post("/delete/{id}", handler.Delete)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", handler.APIList)
		r.Post("/", handler.APICreate)
		r.Post("/{id}/complete", handler.APIComplete)
		r.Delete("/{id}", handler.APIDelete)
	})

	return r
}
