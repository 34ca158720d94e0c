package application

import (
	"github.com/devtrail/bootcamp-api/internal/domain/entity"
	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// Principal is the authenticated user making a request.
type Principal struct {
	ID   string
	Role entity.Role
}

// CanMutate reports whether p may write a resource owned by ownerID.
// Admins may write anything; everyone else only their own resources.
func CanMutate(p Principal, ownerID string) bool {
	return p.ID == ownerID || p.Role == entity.RoleAdmin
}

// CanPublish reports whether p may create bootcamps.
func CanPublish(p Principal) bool {
	return p.Role == entity.RolePublisher || p.Role == entity.RoleAdmin
}

// HasRole reports whether p holds one of the allowed roles.
func HasRole(p Principal, roles ...entity.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// requireOwner returns a Forbidden error naming the principal's role and
// the attempted action unless p may mutate the resource. Denials are
// never silent.
func requireOwner(p Principal, ownerID, action string) error {
	if CanMutate(p, ownerID) {
		return nil
	}
	return apperr.New(apperr.Forbidden, "user %s with role %s is not authorized to %s", p.ID, p.Role, action)
}

// requireRole returns a Forbidden error unless p holds an allowed role.
func requireRole(p Principal, action string, roles ...entity.Role) error {
	if HasRole(p, roles...) {
		return nil
	}
	return apperr.New(apperr.Forbidden, "user role %s is not authorized to %s", p.Role, action)
}
