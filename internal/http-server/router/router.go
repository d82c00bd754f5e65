package router

import (
	"net/http"

	"poster-badger/internal/http-server/handler/poster"
	"poster-badger/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	PosterHandler *poster.PosterHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/posters", func(r chi.Router) {
			r.Post("/upload", h.PosterHandler.UploadPoster)
			r.Get("/{id}", h.PosterHandler.GetPoster)
			r.Get("/{id}/status", h.PosterHandler.GetStatus)
			r.Delete("/{id}", h.PosterHandler.DeletePoster)
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
