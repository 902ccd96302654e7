package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/parla-app/parla-backend/internal/handlers"
	"github.com/parla-app/parla-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler) {
	// Auth routes
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/signin", h.Signin)
	r.Post("/api/auth/logout", h.Logout)

	// Static option lists for the profile forms
	r.Get("/api/profile/dial-codes", h.GetDialCodes)
	r.Get("/api/profile/provinces", h.GetProvinces)

	// Profile routes (session required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/auth/me", h.Me)

		r.Get("/api/profile", h.GetProfile)
		r.Put("/api/profile", h.SaveEdit)
		r.Post("/api/profile/check-username", h.CheckUsername)
		r.Post("/api/profile/password", h.ChangePassword)
		r.Post("/api/profile/avatar", h.UploadAvatar)
		r.Delete("/api/profile/avatar", h.DeleteAvatar)
		r.Post("/api/profile/onboarding", h.Onboarding)
		r.Put("/api/profile/settings", h.UpdateSettings)
		r.Get("/api/profile/stats", h.GetStats)
		r.Get("/api/profile/mistakes", h.GetMistakes)
	})

	// WebSocket endpoint for live username availability feedback
	r.Get("/ws/username", h.UsernameWS)
}
