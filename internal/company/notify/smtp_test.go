package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	mu   sync.Mutex
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func (d *fakeDialer) messages() []*gomail.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*gomail.Message(nil), d.sent...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSMTPNotifier_DeliversQueuedMessages(t *testing.T) {
	d := &fakeDialer{}
	n := newSMTPNotifier(SMTPConfig{
		User:      "noreply@upkeep.dev",
		PublicURL: "https://app.upkeep.dev/",
	}, d, discardLogger())

	n.Start()
	n.SendInvitationEmail(context.Background(), "bob@x.com", "tok")
	n.SendWelcomeEmail(context.Background(), "carol@x.com")
	n.Stop()

	sent := d.messages()
	require.Len(t, sent, 2)
	require.Equal(t, []string{"bob@x.com"}, sent[0].GetHeader("To"))
	require.Equal(t, []string{"You have been invited to UpKeep"}, sent[0].GetHeader("Subject"))
	require.Equal(t, []string{"UpKeep <noreply@upkeep.dev>"}, sent[0].GetHeader("From"))
	require.Equal(t, []string{"carol@x.com"}, sent[1].GetHeader("To"))
}

func TestSMTPNotifier_InvitationLink(t *testing.T) {
	n := newSMTPNotifier(SMTPConfig{PublicURL: "https://app.upkeep.dev/"}, &fakeDialer{}, discardLogger())
	require.Equal(t, "https://app.upkeep.dev/invitations/abc", n.invitationLink("abc"))
}

func TestSMTPNotifier_DropsWhenQueueFull(t *testing.T) {
	d := &fakeDialer{}
	n := newSMTPNotifier(SMTPConfig{QueueSize: 1}, d, discardLogger())

	// Not started yet, so the second message finds the queue full.
	n.SendWelcomeEmail(context.Background(), "a@x.com")
	n.SendWelcomeEmail(context.Background(), "b@x.com")

	n.Start()
	n.Stop()

	sent := d.messages()
	require.Len(t, sent, 1)
	require.Equal(t, []string{"a@x.com"}, sent[0].GetHeader("To"))
}

func TestSMTPNotifier_FailuresAreSwallowed(t *testing.T) {
	d := &fakeDialer{err: errors.New("connection refused")}
	n := newSMTPNotifier(SMTPConfig{}, d, discardLogger())

	n.Start()
	n.SendWelcomeEmail(context.Background(), "a@x.com")
	n.Stop()

	require.Empty(t, d.messages())
}

func TestSMTPNotifier_SendAfterStop(t *testing.T) {
	d := &fakeDialer{}
	n := newSMTPNotifier(SMTPConfig{}, d, discardLogger())

	n.Start()
	n.Stop()

	require.NotPanics(t, func() {
		n.SendWelcomeEmail(context.Background(), "a@x.com")
	})
	require.Empty(t, d.messages())
}
