package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"helpdesk-app/internal/models"
)

// EmailLookup resolves a user's email address from the identity provider.
type EmailLookup interface {
	GetEmail(ctx context.Context, userID string) (string, error)
}

// Notifier sends best-effort email on ticket/appointment create and update.
// Dispatch is fire-and-forget: failures are logged and never change the
// outcome of the triggering request.
type Notifier struct {
	email    EmailService
	identity EmailLookup
}

func NewNotifier(email EmailService, identity EmailLookup) *Notifier {
	return &Notifier{email: email, identity: identity}
}

func (n *Notifier) TicketCreated(t *models.Ticket) {
	n.dispatch(t.UserID, "Ticket received",
		fmt.Sprintf("Your ticket %q has been received and is now %s.", t.Title, t.Status))
}

func (n *Notifier) TicketUpdated(t *models.Ticket) {
	n.dispatch(t.UserID, "Ticket updated",
		fmt.Sprintf("Your ticket %q has been updated. Current status: %s.", t.Title, t.Status))
}

func (n *Notifier) AppointmentCreated(a *models.Appointment) {
	n.dispatch(a.UserID, "Appointment requested",
		fmt.Sprintf("Your appointment %q on %s at %s has been requested.", a.Title, a.AppointmentDate, a.AppointmentTime))
}

func (n *Notifier) AppointmentUpdated(a *models.Appointment) {
	n.dispatch(a.UserID, "Appointment updated",
		fmt.Sprintf("Your appointment %q on %s at %s has been updated. Current status: %s.",
			a.Title, a.AppointmentDate, a.AppointmentTime, a.Status))
}

func (n *Notifier) dispatch(userID, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		to, err := n.identity.GetEmail(ctx, userID)
		if err != nil {
			log.Printf("notification skipped for user %s: %v", userID, err)
			return
		}
		if err := n.email.Send(to, subject, body); err != nil {
			log.Printf("failed to send notification email to %s: %v", to, err)
		}
	}()
}
