// internal/app/features/progressapi/module.go
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

type moduleDetail struct {
	ModuleID  string         `json:"moduleId"`
	Score     float64        `json:"score"`
	Done      bool           `json:"done"`
	Payload   map[string]any `json:"payload"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// moduleProgressResponse carries a null Module when the youth has no
// record for the module yet; callers distinguish "no progress" from a
// fault by the 200 status and ok flag.
type moduleProgressResponse struct {
	OK     bool          `json:"ok"`
	Module *moduleDetail `json:"module"`
}

// ServeModuleProgress returns one module record for one youth, or an
// explicit null when either the aggregate or the module entry is absent.
func (h *Handler) ServeModuleProgress(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	youthID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "youthID"))
	if err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid youth id"))
		return
	}
	moduleID := chi.URLParam(r, "moduleID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := progresspolicy.RequireReader(ctx, h.Users, p, youthID); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	prog, err := h.Progress.GetByYouth(ctx, youthID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierror.WriteJSON(w, http.StatusOK, moduleProgressResponse{OK: true, Module: nil})
			return
		}
		apierror.Write(w, h.Log, err)
		return
	}

	m, found := prog.Module(moduleID)
	if !found {
		apierror.WriteJSON(w, http.StatusOK, moduleProgressResponse{OK: true, Module: nil})
		return
	}

	payload := m.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	apierror.WriteJSON(w, http.StatusOK, moduleProgressResponse{OK: true, Module: &moduleDetail{
		ModuleID:  m.ModuleID,
		Score:     m.Score,
		Done:      m.Done,
		Payload:   payload,
		UpdatedAt: m.UpdatedAt,
	}})
}
