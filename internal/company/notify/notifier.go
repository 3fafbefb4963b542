// Package notify delivers the outbound emails the company use cases trigger.
// Delivery is fire-and-forget: implementations log failures and never report
// them back to the caller.
package notify

import (
	"context"

	"github.com/LofoWalker/upkeep/internal/company/domain"
)

type Notifier interface {
	// SendInvitationEmail delivers the raw invitation token to the invitee.
	SendInvitationEmail(ctx context.Context, email domain.Email, token string)
	SendWelcomeEmail(ctx context.Context, email domain.Email)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) SendInvitationEmail(context.Context, domain.Email, string) {}
func (Nop) SendWelcomeEmail(context.Context, domain.Email)            {}
