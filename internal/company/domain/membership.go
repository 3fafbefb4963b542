package domain

import "time"

// Membership binds one customer to one company with a role. Only the role
// may change after creation.
type Membership struct {
	id         MembershipID
	customerID CustomerID
	companyID  CompanyID
	role       Role
	joinedAt   time.Time
	updatedAt  time.Time
}

func NewMembership(customerID CustomerID, companyID CompanyID, role Role) (*Membership, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	now := time.Now().UTC()
	return &Membership{
		id:         NewMembershipID(),
		customerID: customerID,
		companyID:  companyID,
		role:       role,
		joinedAt:   now,
		updatedAt:  now,
	}, nil
}

type MembershipRecord struct {
	ID         MembershipID
	CustomerID CustomerID
	CompanyID  CompanyID
	Role       Role
	JoinedAt   time.Time
	UpdatedAt  time.Time
}

func RestoreMembership(r MembershipRecord) *Membership {
	return &Membership{
		id:         r.ID,
		customerID: r.CustomerID,
		companyID:  r.CompanyID,
		role:       r.Role,
		joinedAt:   r.JoinedAt,
		updatedAt:  r.UpdatedAt,
	}
}

func (m *Membership) ID() MembershipID       { return m.id }
func (m *Membership) CustomerID() CustomerID { return m.customerID }
func (m *Membership) CompanyID() CompanyID   { return m.companyID }
func (m *Membership) Role() Role             { return m.role }
func (m *Membership) JoinedAt() time.Time    { return m.joinedAt }
func (m *Membership) UpdatedAt() time.Time   { return m.updatedAt }

func (m *Membership) IsOwner() bool { return m.role == RoleOwner }

// BelongsTo reports whether the membership is scoped to companyID.
func (m *Membership) BelongsTo(companyID CompanyID) bool {
	return m.companyID == companyID
}

// ChangeRole sets a new role. Callers are expected to have checked the
// last-owner invariant first.
func (m *Membership) ChangeRole(role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	m.role = role
	m.updatedAt = time.Now().UTC()
	return nil
}
