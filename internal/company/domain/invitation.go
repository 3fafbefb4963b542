package domain

import (
	"fmt"
	"time"

	"github.com/LofoWalker/upkeep/pkg/cryptox"
)

// InvitationTTL is how long an invitation stays acceptable after creation.
const InvitationTTL = 7 * 24 * time.Hour

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined, InvitationExpired:
		return true
	}
	return false
}

// Invitation is a time-boxed, single-use offer of membership in a company.
// Status only moves forward from PENDING to one of the terminal states, and
// only through the methods below.
type Invitation struct {
	id        InvitationID
	companyID CompanyID
	invitedBy CustomerID
	email     Email
	role      Role

	// token is the raw secret and is only known for freshly minted
	// invitations. tokenHash is what gets persisted and looked up.
	token     string
	tokenHash string

	status    InvitationStatus
	createdAt time.Time
	expiresAt time.Time
	updatedAt time.Time
}

// NewInvitation mints a PENDING invitation with a fresh 256-bit token.
func NewInvitation(companyID CompanyID, invitedBy CustomerID, email Email, role Role) (*Invitation, error) {
	return NewInvitationAt(companyID, invitedBy, email, role, time.Now())
}

// NewInvitationAt is NewInvitation with an explicit creation time.
func NewInvitationAt(
	companyID CompanyID,
	invitedBy CustomerID,
	email Email,
	role Role,
	now time.Time,
) (*Invitation, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, fmt.Errorf("generate invitation token: %w", err)
	}

	now = now.UTC()
	return &Invitation{
		id:        NewInvitationID(),
		companyID: companyID,
		invitedBy: invitedBy,
		email:     email,
		role:      role,
		token:     token,
		tokenHash: cryptox.FingerprintToken(token),
		status:    InvitationPending,
		createdAt: now,
		expiresAt: now.Add(InvitationTTL),
		updatedAt: now,
	}, nil
}

// InvitationRecord carries persisted invitation state back into the domain.
type InvitationRecord struct {
	ID        InvitationID
	CompanyID CompanyID
	InvitedBy CustomerID
	Email     Email
	Role      Role
	TokenHash string
	Status    InvitationStatus
	CreatedAt time.Time
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// RestoreInvitation rebuilds an invitation loaded from storage. The raw
// token is not recoverable, so Token returns "" on the result.
func RestoreInvitation(r InvitationRecord) *Invitation {
	return &Invitation{
		id:        r.ID,
		companyID: r.CompanyID,
		invitedBy: r.InvitedBy,
		email:     r.Email,
		role:      r.Role,
		tokenHash: r.TokenHash,
		status:    r.Status,
		createdAt: r.CreatedAt,
		expiresAt: r.ExpiresAt,
		updatedAt: r.UpdatedAt,
	}
}

func (i *Invitation) ID() InvitationID         { return i.id }
func (i *Invitation) CompanyID() CompanyID     { return i.companyID }
func (i *Invitation) InvitedBy() CustomerID    { return i.invitedBy }
func (i *Invitation) Email() Email             { return i.email }
func (i *Invitation) Role() Role               { return i.role }
func (i *Invitation) Token() string            { return i.token }
func (i *Invitation) TokenHash() string        { return i.tokenHash }
func (i *Invitation) Status() InvitationStatus { return i.status }
func (i *Invitation) CreatedAt() time.Time     { return i.createdAt }
func (i *Invitation) ExpiresAt() time.Time     { return i.expiresAt }
func (i *Invitation) UpdatedAt() time.Time     { return i.updatedAt }

// IsExpired reports whether the acceptance window has elapsed. It does not
// look at or change the status.
func (i *Invitation) IsExpired() bool {
	return i.IsExpiredAt(time.Now())
}

func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return now.After(i.expiresAt)
}

func (i *Invitation) CanBeAccepted() bool {
	return i.status == InvitationPending && !i.IsExpired()
}

// Accept moves a pending, unexpired invitation to ACCEPTED. A second call
// fails.
func (i *Invitation) Accept() error {
	if !i.CanBeAccepted() {
		return ErrInvitationNotPending
	}
	i.transition(InvitationAccepted)
	return nil
}

// Decline moves a pending invitation to DECLINED. Expiry is not checked.
func (i *Invitation) Decline() error {
	if i.status != InvitationPending {
		return ErrInvitationNotPending
	}
	i.transition(InvitationDeclined)
	return nil
}

// MarkAsExpired records the EXPIRED status. It does nothing unless the
// invitation is still pending.
func (i *Invitation) MarkAsExpired() {
	if i.status != InvitationPending {
		return
	}
	i.transition(InvitationExpired)
}

func (i *Invitation) transition(to InvitationStatus) {
	i.status = to
	i.updatedAt = time.Now().UTC()
}
