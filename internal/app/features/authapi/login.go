// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/timeouts"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID      string      `json:"id"`
	Role    models.Role `json:"role"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	GroupID string      `json:"groupId,omitempty"`
}

type loginResponse struct {
	OK    bool      `json:"ok"`
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// HandleLogin verifies credentials and issues a bearer token carrying the
// caller's identity claims. Unknown email and wrong password are
// indistinguishable to the caller.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, h.Log, apierror.Validation("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		apierror.Write(w, h.Log, apierror.Validation("email and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierror.Write(w, h.Log, apierror.Unauthenticated("invalid credentials"))
			return
		}
		apierror.Write(w, h.Log, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		apierror.Write(w, h.Log, apierror.Unauthenticated("invalid credentials"))
		return
	}

	token, err := h.Auth.Issue(u)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		apierror.Write(w, h.Log, err)
		return
	}

	resp := loginResponse{
		OK:    true,
		Token: token,
		User: loginUser{
			ID:    u.ID.Hex(),
			Role:  u.Role,
			Name:  u.Name,
			Email: u.Email,
		},
	}
	if u.GroupID != nil {
		resp.User.GroupID = u.GroupID.Hex()
	}
	apierror.WriteJSON(w, http.StatusOK, resp)
}
