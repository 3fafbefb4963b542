package domain

// IsOwner reports whether the membership carries the OWNER role.
func IsOwner(m *Membership) bool {
	return m != nil && m.IsOwner()
}

// RequireOwner gates owner-only operations such as inviting and changing
// roles.
func RequireOwner(m *Membership) error {
	if !IsOwner(m) {
		return ErrNotOwner
	}
	return nil
}

// WouldViolateLastOwnerInvariant reports whether moving a membership from
// previous to next would leave the company without an owner.
// currentOwnerCount is the number of owners before the change.
func WouldViolateLastOwnerInvariant(currentOwnerCount int, previous, next Role) bool {
	return previous == RoleOwner && next != RoleOwner && currentOwnerCount <= 1
}
