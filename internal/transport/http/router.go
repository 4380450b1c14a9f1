package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"commentboard/internal/handler"
	"commentboard/internal/httputil"
	authmw "commentboard/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	CommentHandler      *handler.CommentHandler
	NotificationHandler *handler.NotificationHandler
	JWTSecret           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes - no authentication required
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.With(authmw.AuthMiddleware(cfg.JWTSecret)).Get("/me", cfg.AuthHandler.Me)
		})

		r.Route("/comments", func(r chi.Router) {
			// Comment reads are public; the polling client hits these
			// without a session
			r.Get("/", cfg.CommentHandler.List)
			r.Get("/{id}", cfg.CommentHandler.Get)

			// Mutations require authentication
			r.Group(func(r chi.Router) {
				r.Use(authmw.AuthMiddleware(cfg.JWTSecret))
				r.Post("/", cfg.CommentHandler.Create)
				r.Put("/{id}", cfg.CommentHandler.Update)
				r.Delete("/{id}", cfg.CommentHandler.Delete)
				r.Post("/{id}/undo-delete", cfg.CommentHandler.UndoDelete)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(authmw.AuthMiddleware(cfg.JWTSecret))
			r.Get("/", cfg.NotificationHandler.List)
			r.Get("/unread-count", cfg.NotificationHandler.UnreadCount)
			r.Post("/{id}/read", cfg.NotificationHandler.MarkRead)
			r.Post("/mark-all-read", cfg.NotificationHandler.MarkAllRead)
		})
	})

	return r
}
