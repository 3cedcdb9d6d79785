// Package api exposes the task service as a JSON REST API under /api.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"taskboard/internal/services"
)

// Banner is the plain-text body served at the root path.
const Banner = "Backend running successfully"

// DefaultBodyLimit caps JSON request bodies at 100 KiB.
const DefaultBodyLimit int64 = 100 << 10

// RouterOptions configures the HTTP handler.
type RouterOptions struct {
	// AllowedOrigin is the CORS allow-origin; empty means any origin.
	AllowedOrigin string
	// BodyLimit caps request bodies in bytes; zero means DefaultBodyLimit.
	BodyLimit int64
	Logger    *log.Logger
}

// NewRouter builds the chi router serving the task routes.
func NewRouter(taskService services.TaskService, opts RouterOptions) http.Handler {
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = DefaultBodyLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	origin := opts.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	h := &taskHandler{tasks: taskService, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(limitBody(opts.BodyLimit))

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(Banner))
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}
