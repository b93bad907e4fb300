package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email    string
	FullName string
}

// RegistrationStatusEmailData holds data for the registration status email.
type RegistrationStatusEmailData struct {
	Email      string
	FullName   string
	EventName  string
	EventDate  time.Time
	Location   string
	Status     RegistrationStatus
	AdminNotes string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendRegistrationStatus(ctx context.Context, data *RegistrationStatusEmailData) error
}

// RegistrationStatusChanged is emitted after a status transition has been committed.
type RegistrationStatusChanged struct {
	RegistrationID string             `json:"registration_id"`
	EventID        string             `json:"event_id"`
	ProfileID      string             `json:"profile_id"`
	From           RegistrationStatus `json:"from"`
	To             RegistrationStatus `json:"to"`
	AdminNotes     *string            `json:"admin_notes,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// RegistrationNotifier delivers status-change notifications. Delivery is best effort: a failure
// never rolls back the transition.
type RegistrationNotifier interface {
	Notify(ctx context.Context, change RegistrationStatusChanged) error
}
