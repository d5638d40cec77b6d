package service

import "github.com/rogerio-castellano/order-tracker/internal/models"

// Principal is the authenticated caller of a service operation.
type Principal struct {
	UserID int
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// AuthorizeOwner fails with ErrUnauthorized unless actorID owns the resource.
func AuthorizeOwner(actorID, ownerID int) error {
	if actorID != ownerID {
		return ErrUnauthorized
	}
	return nil
}

// AuthorizeOwnerOrAdmin lets administrators act on any user's resource.
func AuthorizeOwnerOrAdmin(p Principal, ownerID int) error {
	if p.IsAdmin() {
		return nil
	}
	return AuthorizeOwner(p.UserID, ownerID)
}
