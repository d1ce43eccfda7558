// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register-facilitator", h.HandleRegisterFacilitator)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
	})

	return r
}
