package usecases

import "rental-server/entities"

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool { return c.Role == entities.RoleAdmin }

// CanModify reports whether caller may change or remove a resource owned by
// ownerID: admins always may, anyone else only when they are the owner.
func CanModify(caller Caller, ownerID string) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.ID != "" && caller.ID == ownerID
}
