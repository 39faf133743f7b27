package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"dolegal-backend/internal/handlers"
	"dolegal-backend/internal/logger"
	"dolegal-backend/internal/middleware"
)

func New(
	log *logger.Logger,
	chatHandler *handlers.ChatHandler,
	metricsHandler http.Handler,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}
