// internal/app/policy/progresspolicy/progresspolicy.go
package progresspolicy

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/waypointhub/waypoint/internal/app/store/users"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/authz"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

// RequireReader authorizes reading a youth's progress: the youth themself,
// or the facilitator who owns the youth. This tightens the open
// read-anyone's-progress behavior of the system this service replaces,
// which let any authenticated caller browse any youth by id.
func RequireReader(ctx context.Context, users *userstore.Store, p *auth.Principal, youthID primitive.ObjectID) error {
	if p == nil {
		return apierror.Unauthenticated("authentication required")
	}

	switch p.Role {
	case models.RoleYouth:
		// Self-scoped: the resource owner is the youth being read.
		return authz.Authorize(p, authz.Rule{
			Role:    models.RoleYouth,
			OwnerID: youthID.Hex(),
		})

	case models.RoleFacilitator:
		u, err := users.GetByID(ctx, youthID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apierror.NotFound("youth not found")
			}
			return err
		}
		if u.Role != models.RoleYouth || u.FacilitatorID == nil {
			return apierror.NotFound("youth not found")
		}
		return authz.Authorize(p, authz.Rule{
			Role:    models.RoleFacilitator,
			OwnerID: u.FacilitatorID.Hex(),
		})

	default:
		return apierror.Unauthenticated("authentication required")
	}
}
