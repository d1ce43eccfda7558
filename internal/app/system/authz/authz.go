// internal/app/system/authz/authz.go

// Package authz is the access-control evaluator. Every route expresses its
// authorization rule as exactly one Authorize call; handlers never inline
// ad-hoc role or id comparisons.
package authz

import (
	"github.com/waypointhub/waypoint/internal/app/system/apierror"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

// Rule is the declarative authorization requirement for one operation.
// A zero field means "not required": a rule with only Role checks role,
// a rule with only OwnerID checks ownership, and the zero Rule requires
// authentication alone.
type Rule struct {
	// Role the principal must hold, if non-empty.
	Role models.Role
	// OwnerID is the canonical string id of the resource owner, if the
	// operation is scoped to a specific resource. Ids that originate in
	// stored documents must be passed in hex form so claims and documents
	// compare by canonical string, never by reference identity.
	OwnerID string
}

// Authorize decides whether the principal may perform the operation the
// rule describes. It has no side effects and reads no storage; ownership
// facts are resolved by the caller (typically a policy package) before
// the call.
//
// Failure order is fixed: authentication, then role, then ownership, so a
// caller with the wrong role learns nothing about resource ownership.
func Authorize(p *auth.Principal, rule Rule) error {
	if p == nil {
		return apierror.Unauthenticated("authentication required")
	}
	if !p.Role.Valid() {
		// A principal with a role outside the closed set cannot be
		// reasoned about; fail closed.
		return apierror.Unauthenticated("authentication required")
	}
	if rule.Role != "" && p.Role != rule.Role {
		return apierror.RoleMismatch("this action requires the " + rule.Role.String() + " role")
	}
	if rule.OwnerID != "" && rule.OwnerID != p.ID {
		return apierror.OwnershipViolation("you do not own this resource")
	}
	return nil
}
