package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(
	`<p>Hi {{.Name}},</p><p>Your account is ready. Sign in to start writing; new posts stay drafts until you publish them.</p>`,
))

// Welcome builds the message sent after a successful signup.
func Welcome(to, firstName string) Message {
	var buf bytes.Buffer
	_ = welcomeTmpl.Execute(&buf, struct{ Name string }{Name: firstName})
	return Message{
		To:      to,
		Subject: "Welcome to the blog",
		HTML:    buf.String(),
	}
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "outgoing email (local dev)", "to", msg.To, "subject", msg.Subject)
	return nil
}

type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a LogSender for ENV=local, a ResendSender otherwise.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &LogSender{logger: logger.With("component", "email")}
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}
