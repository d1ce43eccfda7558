// internal/app/features/progressapi/routes.go
package progressapi

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(h.Auth.RequireSignedIn)

		// A youth writes their own module progress.
		pr.Put("/modules/{moduleID}", h.HandleUpsertModule)

		// Reads: self or owning facilitator.
		pr.Get("/youth/{youthID}", h.ServeYouthProgress)
		pr.Get("/youth/{youthID}/module/{moduleID}", h.ServeModuleProgress)

		// Fan-out read for a facilitator's own group.
		pr.Get("/groups/{groupID}", h.ServeGroupProgress)
	})

	return r
}
