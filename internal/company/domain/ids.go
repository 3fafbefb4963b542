package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type (
	customerKind   struct{}
	companyKind    struct{}
	membershipKind struct{}
	invitationKind struct{}
)

// ID is an opaque identifier. The type parameter only keeps identifiers of
// different entities from being mixed up; two IDs are equal when their
// underlying UUIDs are.
type ID[K any] struct {
	value uuid.UUID
}

type (
	CustomerID   = ID[customerKind]
	CompanyID    = ID[companyKind]
	MembershipID = ID[membershipKind]
	InvitationID = ID[invitationKind]
)

func (id ID[K]) String() string { return id.value.String() }
func (id ID[K]) IsZero() bool   { return id.value == uuid.Nil }

func newID[K any]() ID[K] { return ID[K]{value: uuid.New()} }

func parseID[K any](kind, s string) (ID[K], error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID[K]{}, fmt.Errorf("%w: invalid %s id %q", ErrValidation, kind, s)
	}
	return ID[K]{value: u}, nil
}

func NewCustomerID() CustomerID     { return newID[customerKind]() }
func NewCompanyID() CompanyID       { return newID[companyKind]() }
func NewMembershipID() MembershipID { return newID[membershipKind]() }
func NewInvitationID() InvitationID { return newID[invitationKind]() }

func ParseCustomerID(s string) (CustomerID, error) { return parseID[customerKind]("customer", s) }
func ParseCompanyID(s string) (CompanyID, error)   { return parseID[companyKind]("company", s) }

func ParseMembershipID(s string) (MembershipID, error) {
	return parseID[membershipKind]("membership", s)
}

func ParseInvitationID(s string) (InvitationID, error) {
	return parseID[invitationKind]("invitation", s)
}
