package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the domain and the use cases wraps
// exactly one of these, so callers can branch with errors.Is on the kind
// or on the specific error below.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrLastOwner    = errors.New("last owner")
	ErrValidation   = errors.New("validation failed")
)

var (
	ErrCustomerNotFound   = fmt.Errorf("customer %w", ErrNotFound)
	ErrCompanyNotFound    = fmt.Errorf("company %w", ErrNotFound)
	ErrMembershipNotFound = fmt.Errorf("membership %w", ErrNotFound)
	ErrInvitationNotFound = fmt.Errorf("invitation %w", ErrNotFound)

	// ErrNotAMember is returned when the acting customer holds no membership
	// in the company named by the request.
	ErrNotAMember = fmt.Errorf("not a member of this company: %w", ErrNotFound)

	ErrNotOwner = fmt.Errorf("owner role required: %w", ErrUnauthorized)

	ErrInvitationPending = fmt.Errorf("a pending invitation already exists for this email: %w", ErrConflict)
	ErrAlreadyMember     = fmt.Errorf("customer is already a member of this company: %w", ErrConflict)
	ErrSlugTaken         = fmt.Errorf("company slug already exists: %w", ErrConflict)
	ErrEmailTaken        = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrCustomerExists    = fmt.Errorf("customer already registered: %w", ErrConflict)

	ErrInvitationExpired    = fmt.Errorf("invitation has %w", ErrExpired)
	ErrInvitationNotPending = fmt.Errorf("invitation is no longer pending: %w", ErrInvalidState)

	ErrLastOwnerDemotion = fmt.Errorf("company must keep at least one owner: %w", ErrLastOwner)

	ErrInvalidEmail       = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrInvalidCompanyName = fmt.Errorf("%w: company name must be between 2 and 100 characters", ErrValidation)
	ErrInvalidSlug        = fmt.Errorf("%w: slug must be 2-50 lowercase letters, digits or single hyphens", ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: role must be OWNER or MEMBER", ErrValidation)
)
