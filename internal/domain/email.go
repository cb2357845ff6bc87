package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationEmailData holds data for the organizer's new-registration email.
type RegistrationEmailData struct {
	EventName     string
	EventDate     string
	Name          string
	Phone         string
	PaymentMethod string
	Value         string
	ReceiptURL    string
	RegisteredAt  string
}

// RegistrationNotifier tells the organizers about a new registration. It runs
// after the registration is stored and never affects the submission outcome.
type RegistrationNotifier interface {
	NotifyRegistration(ctx context.Context, event *EventConfig, reg *Registration) error
}
