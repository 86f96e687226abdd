package contact

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"chiroportaal/internal/analytics"
	"chiroportaal/internal/mail"
)

// Service relays public contact form submissions to the chapter's mailbox.
type Service struct {
	sender  mail.Sender
	tracker analytics.Tracker
	inbox   string
}

func New(sender mail.Sender, tracker analytics.Tracker, inbox string) *Service {
	if tracker == nil {
		tracker = analytics.Noop{}
	}
	return &Service{sender: sender, tracker: tracker, inbox: inbox}
}

// MessageInput is the validated contact form shape.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in MessageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// Send validates the form and relays it, with the visitor's address as
// Reply-To so leiding can answer directly.
func (s *Service) Send(ctx context.Context, in MessageInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	msg := mail.Message{
		To:      []string{s.inbox},
		ReplyTo: in.Email,
		Subject: fmt.Sprintf("[contact] %s", in.Subject),
		Body:    fmt.Sprintf("Van: %s <%s>\n\n%s", in.Name, in.Email, in.Message),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return err
	}
	s.tracker.Track("contact_message_sent", map[string]interface{}{"subject": in.Subject})
	return nil
}
