// Package notifier turns domain events into outgoing email.
package notifier

import (
	"fmt"
	"log"

	"github.com/huyng/kanban-api/internal/config"
	"github.com/huyng/kanban-api/internal/events"
	"gopkg.in/gomail.v2"
)

// EmailNotifier subscribes to the event bus and sends mail over SMTP.
// With no SMTP host configured it logs instead of sending, which keeps
// development environments quiet.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	n := &EmailNotifier{from: cfg.SMTPFrom}
	if cfg.SMTPHost != "" {
		n.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return n
}

// Subscribe attaches the notifier to a bus.
func (n *EmailNotifier) Subscribe(bus *events.Bus) {
	bus.Subscribe(n.handle)
}

func (n *EmailNotifier) handle(e events.Event) {
	switch e.Type {
	case events.UserRegistered:
		payload, ok := e.Payload.(events.UserRegisteredPayload)
		if !ok {
			return
		}
		n.send(payload.Email,
			"Welcome to Kanban",
			"Your account has been created. Create a board to get started.")

	case events.CardAssigned:
		payload, ok := e.Payload.(events.CardAssignedPayload)
		if !ok {
			return
		}
		n.send(payload.AssigneeEmail,
			"You were assigned a card",
			fmt.Sprintf("You have been assigned to the card %q.", payload.CardTitle))
	}
}

func (n *EmailNotifier) send(to, subject, body string) {
	if n.dialer == nil {
		log.Printf("smtp disabled, skipping mail to %s: %s", to, subject)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		log.Printf("failed to send mail to %s: %v", to, err)
	}
}
