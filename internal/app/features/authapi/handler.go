// internal/app/features/authapi/handler.go
package authapi

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/waypointhub/waypoint/internal/app/store/users"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
)

// Handler is the shared dependency container for the auth feature:
// facilitator registration, login, and the current-user endpoint.
type Handler struct {
	Users      *userstore.Store
	Auth       *auth.Manager
	InviteCode string // required to self-register as a facilitator
	BcryptCost int
	Log        *zap.Logger
}

// NewHandler constructs the auth Handler. Called from bootstrap once the
// DB, token manager, and config are ready.
func NewHandler(db *mongo.Database, mgr *auth.Manager, inviteCode string, bcryptCost int, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Auth:       mgr,
		InviteCode: inviteCode,
		BcryptCost: bcryptCost,
		Log:        logger,
	}
}
