package notify

import (
	"context"
	"log/slog"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/pkg/cryptox"
	"github.com/LofoWalker/upkeep/pkg/slogx"
)

// LogNotifier writes notifications to the request logger instead of sending
// them. Only the token fingerprint is logged.
type LogNotifier struct{}

func (LogNotifier) SendInvitationEmail(ctx context.Context, email domain.Email, token string) {
	slogx.FromContext(ctx).Info("invitation email",
		slog.String("to", email.String()),
		slog.String("token_fingerprint", cryptox.FingerprintToken(token)),
	)
}

func (LogNotifier) SendWelcomeEmail(ctx context.Context, email domain.Email) {
	slogx.FromContext(ctx).Info("welcome email", slog.String("to", email.String()))
}
