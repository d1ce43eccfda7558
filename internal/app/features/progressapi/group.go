// internal/app/features/progressapi/group.go
package progressapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/waypointhub/waypoint/internal/app/policy/grouppolicy"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

type groupProgressResponse struct {
	OK       bool              `json:"ok"`
	Progress []models.Progress `json:"progress"`
}

// ServeGroupProgress returns every member's aggregate for a group the
// calling facilitator owns. Members with no aggregate yet are simply
// omitted; results are ordered by youth id.
func (h *Handler) ServeGroupProgress(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
	if err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid group id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := grouppolicy.RequireOwner(ctx, h.Groups, p, groupID)
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	progress, err := h.Progress.GetByYouths(ctx, g.Members)
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	apierror.WriteJSON(w, http.StatusOK, groupProgressResponse{OK: true, Progress: progress})
}
