// internal/app/features/groupsapi/list.go
package groupsapi

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/authz"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

type groupSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type groupListResponse struct {
	OK     bool           `json:"ok"`
	Groups []groupSummary `json:"groups"`
}

// ServeGroupList returns summaries of the calling facilitator's own
// groups.
func (h *Handler) ServeGroupList(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)
	if err := authz.Authorize(p, authz.Rule{Role: models.RoleFacilitator}); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	facilitatorID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.Unauthenticated("authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Groups.ListByFacilitator(ctx, facilitatorID)
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	out := make([]groupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupSummary{
			ID:          g.ID.Hex(),
			Name:        g.Name,
			MemberCount: len(g.Members),
			CreatedAt:   g.CreatedAt,
		})
	}
	apierror.WriteJSON(w, http.StatusOK, groupListResponse{OK: true, Groups: out})
}
