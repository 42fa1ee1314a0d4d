package email_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/blog-api/internal/email"
)

func TestWelcome_EscapesName(t *testing.T) {
	msg := email.Welcome("ada@example.com", "<b>Ada</b>")

	if msg.To != "ada@example.com" {
		t.Errorf("to = %q", msg.To)
	}
	if strings.Contains(msg.HTML, "<b>Ada</b>") {
		t.Errorf("name was not escaped: %s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "&lt;b&gt;Ada&lt;/b&gt;") {
		t.Errorf("escaped name missing: %s", msg.HTML)
	}
}

func TestNewSender_LocalLogsInsteadOfSending(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := email.NewSender("local", "", "", logger)
	if _, ok := s.(*email.LogSender); !ok {
		t.Fatalf("sender = %T, want *email.LogSender", s)
	}
	if err := s.Send(context.Background(), email.Welcome("ada@example.com", "Ada")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(buf.String(), "ada@example.com") {
		t.Errorf("log output missing recipient: %s", buf.String())
	}
}

func TestNewSender_NonLocalUsesResend(t *testing.T) {
	s := email.NewSender("production", "re_test", "blog@example.com", slog.Default())
	if _, ok := s.(*email.ResendSender); !ok {
		t.Fatalf("sender = %T, want *email.ResendSender", s)
	}
}
