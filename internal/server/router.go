package server

import (
	"net/http"

	"photobooth/internal/photo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(photoCtrl *photo.Controller, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", photoCtrl.HandleHealth)
	r.Get("/photos", photoCtrl.HandleListPhotos)
	r.Post("/photos", photoCtrl.HandleCreatePhoto)
	r.Patch("/photos/{id}", photoCtrl.HandlePatchPhoto)
	r.Post("/photos/{id}/print", photoCtrl.HandlePrintPhoto)
	r.Post("/photos/{id}/reprint", photoCtrl.HandleReprintPhoto)
	r.Post("/auto-simulate", photoCtrl.HandleAutoSimulate)
	r.Get("/events", photoCtrl.HandleEvents)
	r.Post("/api/login", photoCtrl.HandleLogin)

	logger.Info("routes registered")
	return r
}
