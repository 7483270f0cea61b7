// Package rest wires the HTTP routes to the handlers and assembles the
// middleware chain.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"fermentlog-backend/infrastructure/config"
	"fermentlog-backend/interfaces/http/rest/handlers"
	"fermentlog-backend/interfaces/http/rest/middleware"
	apperrors "fermentlog-backend/pkg/errors"
	"fermentlog-backend/pkg/observability"
)

// Handlers groups the route handlers the router mounts.
type Handlers struct {
	Batches   *handlers.BatchHandler
	Events    *handlers.EventHandler
	Reminders *handlers.ReminderHandler
	Devices   *handlers.DeviceHandler
	Export    *handlers.ExportHandler
	Public    *handlers.PublicHandler
}

// NewRouter builds the route tree. The health and /public routes are
// unauthenticated; everything else passes through the auth middleware.
func NewRouter(cfg *config.Config, h Handlers, authn *middleware.Authenticator, errorHandler *apperrors.ErrorHandler, metrics *observability.Metrics, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(errorHandler.Middleware)
	r.Use(middleware.RequestMetrics(metrics))

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Unmatched routes get a uniform 404, distinct from domain not-found.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorHandler.HandleStatus(w, req, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		errorHandler.HandleStatus(w, req, http.StatusNotFound, "route not found")
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Get("/public/b/{batchId}", h.Public.GetBatch)

	r.Group(func(r chi.Router) {
		r.Use(authn.Middleware)

		r.Route("/batches", func(r chi.Router) {
			r.Post("/", h.Batches.Create)
			r.Get("/", h.Batches.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Batches.Get)
				r.Put("/", h.Batches.Update)
				r.Delete("/", h.Batches.Archive)

				r.Post("/photo/upload-url", h.Batches.PhotoUploadURL)
				r.Post("/photo", h.Batches.AttachPhoto)
				r.Get("/photos", h.Batches.ListPhotos)

				r.Post("/events", h.Events.Create)
				r.Get("/events", h.Events.List)
				r.Delete("/events/{timestamp}", h.Events.Delete)

				r.Get("/reminders/suggestions", h.Reminders.Suggestions)
				r.Post("/reminders/confirm", h.Reminders.Confirm)
			})
		})

		r.Route("/me", func(r chi.Router) {
			r.Get("/reminders", h.Reminders.List)
			r.Delete("/reminders/{id}", h.Reminders.Cancel)

			r.Post("/devices", h.Devices.Register)
			r.Get("/devices", h.Devices.List)
			r.Delete("/devices/{id}", h.Devices.Delete)
		})

		r.Get("/export.csv", h.Export.Download)
	})

	return r
}
