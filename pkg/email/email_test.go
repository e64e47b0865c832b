package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brand = Brand{Name: "Aluworks", Phone: "+232 76 000000", Email: "office@aluworks.sl", Address: "Freetown"}

func TestOperatorNotification(t *testing.T) {
	msg, err := OperatorNotification("ops@aluworks.sl", brand, ContactForm{
		Name:    "Isatu",
		Email:   "isatu@example.com",
		Subject: "Sliding doors",
		Message: "Need a quote\n<b>two</b> doors",
	})
	require.NoError(t, err)

	assert.Equal(t, "ops@aluworks.sl", msg.To)
	assert.Equal(t, "isatu@example.com", msg.ReplyTo)
	assert.Equal(t, "New enquiry from Isatu: Sliding doors", msg.Subject)
	assert.Contains(t, msg.HTML, "Need a quote<br>")
	assert.Contains(t, msg.HTML, "&lt;b&gt;two&lt;/b&gt;")
	assert.NotContains(t, msg.HTML, "Phone:")
	assert.Contains(t, msg.Text, "<b>two</b> doors")
}

func TestAutoReply(t *testing.T) {
	msg, err := AutoReply(brand, ContactForm{Name: "Isatu", Email: "isatu@example.com", Message: "Hi"})
	require.NoError(t, err)

	assert.Equal(t, "isatu@example.com", msg.To)
	assert.Equal(t, "office@aluworks.sl", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "Aluworks")
	assert.Contains(t, msg.Text, "Hello Isatu,")
	assert.Contains(t, msg.Text, "+232 76 000000")
}

func TestSMTPSenderBuildsMultipartMessage(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotBody string
	)
	s := NewSMTPSender(EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, FromName: "Aluworks", FromEmail: "office@aluworks.sl"})
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		assert.Nil(t, a)
		return nil
	}

	err := s.Send(context.Background(), Message{
		To:      "isatu@example.com",
		Subject: "Hello\r\nBcc: evil@example.com",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"isatu@example.com"}, gotTo)
	assert.Contains(t, gotBody, "From: Aluworks <office@aluworks.sl>\r\n")
	assert.Contains(t, gotBody, "Subject: Hello Bcc: evil@example.com\r\n")
	assert.NotContains(t, gotBody, "\r\nBcc:")
	assert.Contains(t, gotBody, "Content-Type: multipart/alternative;")
	assert.Less(t, strings.Index(gotBody, "text/plain"), strings.Index(gotBody, "text/html"))
}

func TestSMTPSenderErrors(t *testing.T) {
	s := NewSMTPSender(EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 25})
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }

	err := s.Send(context.Background(), Message{To: "a@example.com", Text: "x"})
	assert.ErrorContains(t, err, "connection refused")

	assert.Error(t, s.Send(context.Background(), Message{Text: "x"}))
	assert.Error(t, s.Send(context.Background(), Message{To: "a@example.com"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: "a@example.com", Text: "x"}), context.Canceled)
}

func TestBuildMessageDate(t *testing.T) {
	s := NewSMTPSender(EmailConfig{FromEmail: "office@aluworks.sl"})
	when := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	raw, err := s.buildMessage(Message{To: "a@example.com", Text: "x"}, when)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Date: Sun, 01 Mar 2026 09:00:00 +0000\r\n")
	assert.Contains(t, string(raw), "From: office@aluworks.sl\r\n")
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), Message{To: "a@example.com"}))
}
