// internal/app/features/groupsapi/handler.go
package groupsapi

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/waypointhub/waypoint/internal/app/store/groups"
	userstore "github.com/waypointhub/waypoint/internal/app/store/users"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
)

// Handler is the shared dependency container for the groups feature:
// group creation, listing, youth enrollment, and the member roster.
type Handler struct {
	Groups     *groupstore.Store
	Users      *userstore.Store
	Auth       *auth.Manager
	BcryptCost int
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, mgr *auth.Manager, bcryptCost int, logger *zap.Logger) *Handler {
	return &Handler{
		Groups:     groupstore.New(db),
		Users:      userstore.New(db),
		Auth:       mgr,
		BcryptCost: bcryptCost,
		Log:        logger,
	}
}
