package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/quillmind/tutor-api/internal/api"
	apimiddleware "github.com/quillmind/tutor-api/internal/api/middleware"
	"github.com/quillmind/tutor-api/internal/api/shared"
	"github.com/quillmind/tutor-api/internal/service/tutor"
)

// newRouter wires the HTTP routes. Endpoints map one-to-one onto the
// tutoring service surface.
func newRouter(service *tutor.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	handler := api.NewTutorHandler(service)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		shared.RespondWithJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", handler.StartSession)
		r.Post("/{id}/messages", handler.SendMessage)
		r.Post("/{id}/quiz-answers", handler.SubmitQuizAnswer)
		r.Delete("/{id}", handler.EndSession)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/{id}/difficulty", handler.GetDifficulty)
		r.Get("/{id}/next-concept", handler.GetNextConcept)
	})

	return r
}
