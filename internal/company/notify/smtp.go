package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/LofoWalker/upkeep/internal/company/domain"
)

const defaultQueueSize = 64

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	// PublicURL is the base of the web app, used to build invitation links.
	PublicURL string

	QueueSize int
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier queues messages and delivers them from a single worker
// goroutine. Messages may be queued before Start. A message that finds the
// queue full, or arrives after Stop, is dropped with a warning.
type SMTPNotifier struct {
	cfg    SMTPConfig
	dialer dialer
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan *gomail.Message
	done   chan struct{}
}

func NewSMTPNotifier(cfg SMTPConfig, logger *slog.Logger) *SMTPNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return newSMTPNotifier(cfg, d, logger)
}

func newSMTPNotifier(cfg SMTPConfig, d dialer, logger *slog.Logger) *SMTPNotifier {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	return &SMTPNotifier{
		cfg:    cfg,
		dialer: d,
		logger: logger,
		queue:  make(chan *gomail.Message, cfg.QueueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (n *SMTPNotifier) Start() {
	go n.run()
	n.logger.Info("smtp notifier started",
		slog.String("host", n.cfg.Host),
		slog.Int("queue_size", n.cfg.QueueSize),
	)
}

// Stop closes the queue and blocks until every queued message has been
// attempted.
func (n *SMTPNotifier) Stop() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	<-n.done
	n.logger.Info("smtp notifier stopped")
}

func (n *SMTPNotifier) run() {
	defer close(n.done)

	for m := range n.queue {
		if err := n.dialer.DialAndSend(m); err != nil {
			n.logger.Error("failed to send email",
				slog.Any("to", m.GetHeader("To")),
				slog.Any("subject", m.GetHeader("Subject")),
				slog.Any("error", err),
			)
			continue
		}
		n.logger.Debug("email sent", slog.Any("to", m.GetHeader("To")))
	}
}

func (n *SMTPNotifier) SendInvitationEmail(_ context.Context, email domain.Email, token string) {
	link := n.invitationLink(token)
	body := fmt.Sprintf(
		`<p>You have been invited to join a company on UpKeep.</p>`+
			`<p><a href="%s">Accept the invitation</a></p>`+
			`<p>The link expires in %d days.</p>`,
		link, int(domain.InvitationTTL.Hours()/24),
	)
	n.enqueue(n.compose(email, "You have been invited to UpKeep", body))
}

func (n *SMTPNotifier) SendWelcomeEmail(_ context.Context, email domain.Email) {
	body := fmt.Sprintf(`<p>Welcome to UpKeep!</p><p><a href="%s">Get started</a></p>`, n.cfg.PublicURL)
	n.enqueue(n.compose(email, "Welcome to UpKeep", body))
}

func (n *SMTPNotifier) invitationLink(token string) string {
	return n.cfg.PublicURL + "/invitations/" + token
}

func (n *SMTPNotifier) compose(to domain.Email, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", "UpKeep", n.cfg.From))
	m.SetHeader("To", to.String())
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

func (n *SMTPNotifier) enqueue(m *gomail.Message) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.logger.Warn("smtp notifier stopped, dropping message", slog.Any("to", m.GetHeader("To")))
		return
	}

	select {
	case n.queue <- m:
	default:
		n.logger.Warn("email queue full, dropping message",
			slog.Any("to", m.GetHeader("To")),
			slog.Any("subject", m.GetHeader("Subject")),
		)
	}
}
