package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tenx-cards/internal/api"
	apiMiddleware "github.com/phrazzld/tenx-cards/internal/api/middleware"
	"github.com/phrazzld/tenx-cards/internal/config"
	"github.com/phrazzld/tenx-cards/internal/service/auth"
	"github.com/rs/cors"
)

// routes groups the handlers mounted by newRouter.
type routes struct {
	tokens      auth.JWTService
	generations *api.GenerationHandler
	flashcards  *api.FlashcardHandler
	auth        *api.AuthHandler
}

// newRouter creates the chi router with middleware and every API route.
func newRouter(cfg config.ServerConfig, logger *slog.Logger, h routes) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{apiMiddleware.TraceHeader},
		MaxAge:         300,
	}).Handler)

	authMiddleware := apiMiddleware.NewAuthMiddleware(h.tokens)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.auth.Register)
		r.Post("/auth/login", h.auth.Login)
		r.Post("/auth/refresh", h.auth.RefreshToken)
		r.Post("/auth/logout", h.auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/generations", h.generations.Create)
			r.Post("/flashcards", h.flashcards.Create)
		})
	})

	r.Get("/health", api.Health)

	return r
}
