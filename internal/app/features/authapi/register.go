// internal/app/features/authapi/register.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	userstore "github.com/waypointhub/waypoint/internal/app/store/users"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

type registerResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// HandleRegisterFacilitator creates a facilitator account. Registration is
// gated by a shared invite code so the endpoint cannot be used to mint
// arbitrary staff accounts.
func (h *Handler) HandleRegisterFacilitator(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid request body"))
		return
	}
	if err := validateRegistration(req); err != nil {
		apierror.Write(w, h.Log, err)
		return
	}
	if req.Code != h.InviteCode {
		apierror.Write(w, h.Log, apierror.Forbidden("invalid facilitator code"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		apierror.Write(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Email:        strings.TrimSpace(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         models.RoleFacilitator,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apierror.Write(w, h.Log, apierror.Conflict("email already exists"))
			return
		}
		apierror.Write(w, h.Log, err)
		return
	}

	apierror.WriteJSON(w, http.StatusCreated, registerResponse{OK: true, ID: u.ID.Hex()})
}

func validateRegistration(req registerRequest) error {
	if !validEmail(req.Email) {
		return apierror.Validation("a valid email is required")
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		return apierror.Validation("name must be at least 2 characters")
	}
	if len(req.Password) < 6 {
		return apierror.Validation("password must be at least 6 characters")
	}
	return nil
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
