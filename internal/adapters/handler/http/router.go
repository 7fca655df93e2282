package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vidstream/api/internal/core/ports"
)

// NewHandler wires the middleware chain and the user routes. The chain runs
// in order: request ID, logging, panic recovery, CORS, then the per-route
// auth gate for authenticated operations.
func NewHandler(authHandler *AuthHandler, userHandler *UserHandler, tokens ports.TokenService, users ports.UserRepository, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "ok", nil)
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh-token", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(tokens, users))
			r.Post("/logout", authHandler.Logout)
			r.Get("/current-user", userHandler.CurrentUser)
			r.Post("/change-password", userHandler.ChangePassword)
			r.Patch("/update-account", userHandler.UpdateAccount)
			r.Patch("/avatar", userHandler.UpdateAvatar)
			r.Patch("/cover-image", userHandler.UpdateCoverImage)
		})
	})

	return r
}
