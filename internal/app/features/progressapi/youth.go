// internal/app/features/progressapi/youth.go
package progressapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/waypointhub/waypoint/internal/app/policy/progresspolicy"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
)

// moduleView is the per-module row returned by the youth progress read.
type moduleView struct {
	YouthID   string    `json:"youthId"`
	ModuleID  string    `json:"moduleId"`
	Score     float64   `json:"score"`
	Done      bool      `json:"done"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type youthProgressResponse struct {
	OK       bool         `json:"ok"`
	Progress []moduleView `json:"progress"`
}

// ServeYouthProgress lists all module records for one youth. A youth with
// no aggregate yet yields an empty list, not an error.
func (h *Handler) ServeYouthProgress(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	youthID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "youthID"))
	if err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid youth id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := progresspolicy.RequireReader(ctx, h.Users, p, youthID); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	prog, err := h.Progress.GetByYouth(ctx, youthID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierror.WriteJSON(w, http.StatusOK, youthProgressResponse{OK: true, Progress: []moduleView{}})
			return
		}
		apierror.Write(w, h.Log, err)
		return
	}

	views := make([]moduleView, 0, len(prog.Modules))
	for _, m := range prog.Modules {
		views = append(views, moduleView{
			YouthID:   prog.YouthID.Hex(),
			ModuleID:  m.ModuleID,
			Score:     m.Score,
			Done:      m.Done,
			UpdatedAt: m.UpdatedAt,
		})
	}
	apierror.WriteJSON(w, http.StatusOK, youthProgressResponse{OK: true, Progress: views})
}
