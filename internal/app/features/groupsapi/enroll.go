// internal/app/features/groupsapi/enroll.go
package groupsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/waypointhub/waypoint/internal/app/policy/grouppolicy"
	userstore "github.com/waypointhub/waypoint/internal/app/store/users"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

type enrollRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	TempPassword string `json:"tempPassword"`
}

type enrollResponse struct {
	OK      bool   `json:"ok"`
	YouthID string `json:"youthId"`
}

// HandleEnrollYouth creates a youth account bound to the group and its
// owning facilitator, then appends the youth to the group's member set.
// The caller must own the group. The member append is an atomic set-add
// on the group document, so concurrent enrollments cannot drop each
// other.
func (h *Handler) HandleEnrollYouth(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.CurrentPrincipal(r)

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
	if err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid group id"))
		return
	}

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid request body"))
		return
	}
	if err := validateEnrollment(req); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := grouppolicy.RequireOwner(ctx, h.Groups, p, groupID)
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.TempPassword), h.BcryptCost)
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	youth, err := h.Users.Create(ctx, models.User{
		Email:         strings.TrimSpace(req.Email),
		Name:          strings.TrimSpace(req.Name),
		PasswordHash:  string(hash),
		Role:          models.RoleYouth,
		GroupID:       &g.ID,
		FacilitatorID: &g.FacilitatorID,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apierror.Write(w, h.Log, apierror.Conflict("email already exists"))
			return
		}
		apierror.Write(w, h.Log, err)
		return
	}

	if err := h.Groups.AddMember(ctx, g.ID, youth.ID); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	apierror.WriteJSON(w, http.StatusCreated, enrollResponse{OK: true, YouthID: youth.ID.Hex()})
}

func validateEnrollment(req enrollRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return apierror.Validation("name must be at least 2 characters")
	}
	if !validEmail(req.Email) {
		return apierror.Validation("a valid email is required")
	}
	if len(req.TempPassword) < 6 {
		return apierror.Validation("temp password must be at least 6 characters")
	}
	return nil
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
