// internal/app/features/groupsapi/routes.go
package groupsapi

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Everything under /groups requires authentication; role and ownership
	// rules are evaluated per handler.
	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireSignedIn)

		pr.Post("/", h.HandleCreateGroup)
		pr.Get("/", h.ServeGroupList)

		pr.Post("/{groupID}/youths", h.HandleEnrollYouth)
		pr.Get("/{groupID}/members", h.ServeMembers)
	})

	return r
}
