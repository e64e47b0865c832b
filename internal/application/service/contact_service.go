package service

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"

	"github.com/sangkips/aluworks-api/pkg/email"
)

// ErrContactIncomplete is returned when name, email or message is missing
var ErrContactIncomplete = errors.New("Name, email, and message are required")

// ErrContactEmail is returned when the sender address cannot be parsed
var ErrContactEmail = errors.New("Please provide a valid email address")

// ContactReceived is the acknowledgement shown to the sender. It is returned
// whether or not delivery succeeded.
const ContactReceived = "Thank you for your message. We will get back to you soon."

// ContactService forwards public contact form submissions by mail
type ContactService struct {
	sender   email.Sender
	operator string
	settings *SettingsService
}

// NewContactService creates a new contact service. operator is the inbox that
// receives enquiries.
func NewContactService(sender email.Sender, operator string, settings *SettingsService) *ContactService {
	return &ContactService{
		sender:   sender,
		operator: operator,
		settings: settings,
	}
}

// ContactInput is a contact form submission
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Submit sends the operator notification and the auto-reply. Delivery
// failures are logged and not reported to the caller.
func (s *ContactService) Submit(ctx context.Context, input *ContactInput) (string, error) {
	form := email.ContactForm{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if form.Name == "" || form.Email == "" || form.Message == "" {
		return "", ErrContactIncomplete
	}
	addr, err := mail.ParseAddress(form.Email)
	if err != nil {
		return "", ErrContactEmail
	}
	// A display-name form such as "Bob <bob@x.com>" is reduced to the bare
	// address used for RCPT TO and Reply-To.
	form.Email = addr.Address

	brand := s.brand(ctx)

	if s.operator != "" {
		msg, err := email.OperatorNotification(s.operator, brand, form)
		if err == nil {
			err = s.sender.Send(ctx, msg)
		}
		if err != nil {
			log.Printf("Failed to send contact notification from %s: %v", form.Email, err)
		}
	} else {
		log.Printf("No operator inbox configured; enquiry from %s not forwarded", form.Email)
	}

	reply, err := email.AutoReply(brand, form)
	if err == nil {
		err = s.sender.Send(ctx, reply)
	}
	if err != nil {
		log.Printf("Failed to send auto-reply to %s: %v", form.Email, err)
	}

	return ContactReceived, nil
}

// brand reads the workshop identity; mail still goes out with the
// configured name when the profile cannot be loaded
func (s *ContactService) brand(ctx context.Context) email.Brand {
	profile, err := s.settings.GetProfile(ctx)
	if err != nil {
		log.Printf("Failed to load workshop profile for mail: %v", err)
		return email.Brand{Name: s.settings.defaults.Name, Email: s.settings.defaults.Email}
	}
	return email.Brand{
		Name:    profile.Name,
		Phone:   profile.Phone,
		Email:   profile.Email,
		Address: profile.Address,
	}
}
