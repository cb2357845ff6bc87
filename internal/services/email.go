package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventregistration/internal/domain"
)

type emailNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	locale   Locale
	to       string
	logger   *slog.Logger
}

// NewEmailNotifier returns a RegistrationNotifier that mails the organizers using
// the "registration_received" template. With an empty recipient it does nothing.
func NewEmailNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, locale Locale, to string, logger *slog.Logger) domain.RegistrationNotifier {
	return &emailNotifier{mailer: mailer, renderer: renderer, locale: locale, to: to, logger: logger}
}

// NotifyRegistration sends the new-registration email for reg.
func (n *emailNotifier) NotifyRegistration(ctx context.Context, event *domain.EventConfig, reg *domain.Registration) error {
	if n.to == "" {
		return nil
	}
	if reg == nil {
		return fmt.Errorf("registration is nil")
	}
	data := n.emailData(event, reg)
	subject, htmlBody, textBody, err := n.renderer.Render("registration_received", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_received template: %w", err)
	}
	if err := n.mailer.Send(ctx, n.to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	n.logger.InfoContext(ctx, "organizer notified", "registration_id", reg.ID)
	return nil
}

func (n *emailNotifier) emailData(event *domain.EventConfig, reg *domain.Registration) *domain.RegistrationEmailData {
	data := &domain.RegistrationEmailData{
		EventName:     EventName(event),
		EventDate:     n.locale.FormatDate(nil),
		Value:         n.locale.FormatValue(nil),
		Name:          reg.Name,
		Phone:         reg.Phone,
		PaymentMethod: string(reg.PaymentMethod),
		RegisteredAt:  n.locale.FormatDate(&reg.CreatedAt),
	}
	if s, ok := domain.LookupPaymentStrategy(reg.PaymentMethod); ok {
		data.PaymentMethod = s.Label
	}
	if event != nil {
		data.EventDate = n.locale.FormatDate(event.Date)
		data.Value = n.locale.FormatValue(event.Value)
	}
	if reg.ReceiptRef != nil {
		data.ReceiptURL = *reg.ReceiptRef
	}
	return data
}
