// internal/app/features/progressapi/upsert.go
package progressapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	progressstore "github.com/waypointhub/waypoint/internal/app/store/progress"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/authz"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

type upsertModuleRequest struct {
	Score *float64       `json:"score"`
	Done  *bool          `json:"done"`
	Data  map[string]any `json:"data"`
}

type upsertModuleResponse struct {
	OK       bool            `json:"ok"`
	Progress models.Progress `json:"progress"`
}

// HandleUpsertModule records a youth's progress for one module. The target
// youth is always the caller; no facilitator may write on a youth's
// behalf. Omitted fields keep their stored values, and the store folds the
// overall score in the same atomic write.
func (h *Handler) HandleUpsertModule(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)
	if err := authz.Authorize(p, authz.Rule{Role: models.RoleYouth}); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	youthID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.Unauthenticated("authentication required"))
		return
	}
	moduleID := chi.URLParam(r, "moduleID")

	var req upsertModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid request body"))
		return
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		apierror.Write(w, h.Log, apierror.Validation("score must be between 0 and 100"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	prog, err := h.Progress.UpsertModule(ctx, youthID, moduleID, progressstore.ModuleUpdate{
		Score:   req.Score,
		Done:    req.Done,
		Payload: req.Data,
	})
	if err != nil {
		if errors.Is(err, progressstore.ErrScoreOutOfRange) || errors.Is(err, progressstore.ErrInvalidModuleID) {
			apierror.Write(w, h.Log, apierror.Validation(err.Error()))
			return
		}
		apierror.Write(w, h.Log, err)
		return
	}

	apierror.WriteJSON(w, http.StatusOK, upsertModuleResponse{OK: true, Progress: prog})
}
