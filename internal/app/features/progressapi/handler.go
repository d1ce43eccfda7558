// internal/app/features/progressapi/handler.go
package progressapi

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/waypointhub/waypoint/internal/app/store/groups"
	progressstore "github.com/waypointhub/waypoint/internal/app/store/progress"
	userstore "github.com/waypointhub/waypoint/internal/app/store/users"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
)

// Handler is the shared dependency container for the progress feature:
// module upserts by youths and the read paths for youths, single modules,
// and whole groups.
type Handler struct {
	Progress *progressstore.Store
	Groups   *groupstore.Store
	Users    *userstore.Store
	Auth     *auth.Manager
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, mgr *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Progress: progressstore.New(db),
		Groups:   groupstore.New(db),
		Users:    userstore.New(db),
		Auth:     mgr,
		Log:      logger,
	}
}
