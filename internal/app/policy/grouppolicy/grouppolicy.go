// internal/app/policy/grouppolicy/grouppolicy.go
package grouppolicy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	groupstore "github.com/waypointhub/waypoint/internal/app/store/groups"
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/app/system/authz"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

// RequireOwner resolves the group and authorizes the principal as its
// owning facilitator, returning the group on success.
//
// Policy choice on existence leakage: an absent group yields NotFound and a
// group owned by someone else yields OwnershipViolation. The two remain
// distinguishable externally (404 vs 403); this service keeps the behavior
// of the system it replaces rather than collapsing 403 into 404.
func RequireOwner(ctx context.Context, groups *groupstore.Store, p *auth.Principal, groupID primitive.ObjectID) (models.Group, error) {
	if p == nil {
		return models.Group{}, apierror.Unauthenticated("authentication required")
	}

	g, err := groups.GetByID(ctx, groupID)
	if err != nil {
		if err == groupstore.ErrNotFound {
			return models.Group{}, apierror.NotFound("group not found")
		}
		return models.Group{}, err
	}

	// Ownership facts come from the stored document; the evaluator compares
	// canonical string ids.
	if err := authz.Authorize(p, authz.Rule{
		Role:    models.RoleFacilitator,
		OwnerID: g.FacilitatorID.Hex(),
	}); err != nil {
		return models.Group{}, err
	}
	return g, nil
}
