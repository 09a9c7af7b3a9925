package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a single outbound email
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	Text      string
	HTML      string
}

// Sender delivers email messages. Delivery failures are returned to the
// caller; retry policy is the caller's concern.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridSender sends mail through the SendGrid v3 API
type SendgridSender struct {
	key    string
	from   *sgmail.Email
	logger *slog.Logger
}

func NewSendgridSender(apiKey, fromName, fromAddress string, logger *slog.Logger) *SendgridSender {
	return &SendgridSender{
		key:    apiKey,
		from:   sgmail.NewEmail(fromName, fromAddress),
		logger: logger,
	}
}

func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddress))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email: status %d: %s", res.StatusCode, res.Body)
	}

	s.logger.Debug("email sent", "to", msg.ToAddress, "subject", msg.Subject)
	return nil
}

// ConsoleSender logs messages instead of delivering them. Used in development
// and tests; SentMessages exposes what was "sent".
type ConsoleSender struct {
	mu            sync.Mutex
	sent          []Message
	logger        *slog.Logger
	disableOutput bool
}

func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

// NewConsoleSenderSilent is the test variant; it records without logging
func NewConsoleSenderSilent() *ConsoleSender {
	return &ConsoleSender{
		logger:        slog.Default(),
		disableOutput: true,
	}
}

func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()

	if !s.disableOutput {
		s.logger.Info("email (console backend)",
			"to", msg.ToAddress,
			"subject", msg.Subject,
			"body", msg.Text)
	}
	return nil
}

// SentMessages returns a snapshot of recorded messages
func (s *ConsoleSender) SentMessages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
