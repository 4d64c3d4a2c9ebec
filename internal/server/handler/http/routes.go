// Package http provides HTTP routing and middleware configuration for
// the teamlog service.
package http

import (
	"net/http"

	"github.com/tkhr-dev/teamlog/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles the route handlers mounted by NewRouter.
type Handlers struct {
	Auth       *AuthHandler
	Members    *MembersHandler
	Attendance *AttendanceHandler
	Events     *EventsHandler
	ReadingLog *ReadingLogHandler
	Books      *BooksHandler
}

// NewRouter constructs and returns an HTTP handler that serves the
// teamlog API under /api.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. RequestID                            — tags requests for tracing
//  3. WithRequestLogging(logger)           — logs each request
//  4. SessionAuth                          — resolves the session cookie
func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Use(middleware.RequestID)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve the session cookie into the request context
	r.Use(middleware.SessionAuth)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.Members.List)
			r.Post("/", h.Members.Create)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.List)
			r.Post("/", h.Attendance.Upsert)
			r.Patch("/{id}", h.Attendance.Patch)
			r.Delete("/{id}", h.Attendance.Delete)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Events.List)
			r.Post("/", h.Events.Create)
		})

		r.Route("/reading-records", func(r chi.Router) {
			r.Get("/", h.ReadingLog.List)
			r.Post("/", h.ReadingLog.Create)
			r.Patch("/{id}", h.ReadingLog.Patch)
			r.Delete("/{id}", h.ReadingLog.Delete)
		})

		r.Get("/books/search", h.Books.Search)
	})

	return r
}
