package services

import (
	"strings"

	"eventregistration/internal/domain"
)

// GenericEventName labels events that have no name.
const GenericEventName = "Evento da Igreja"

// MessageComposer renders the confirmation message sent through the handoff link.
// Compose is pure: the same inputs always give the same bytes.
type MessageComposer struct {
	locale        Locale
	defaultPixKey string
}

// NewMessageComposer returns a composer using locale for dates and money, and
// defaultPixKey when an event has no payment info of its own.
func NewMessageComposer(locale Locale, defaultPixKey string) *MessageComposer {
	return &MessageComposer{locale: locale, defaultPixKey: defaultPixKey}
}

// Locale returns the presentation rules the composer renders with.
func (c *MessageComposer) Locale() Locale { return c.locale }

// EventName returns the event's display name or the generic label.
func EventName(event *domain.EventConfig) string {
	if event == nil || event.Name == nil || strings.TrimSpace(*event.Name) == "" {
		return GenericEventName
	}
	return strings.TrimSpace(*event.Name)
}

// PixKey returns the payment key shown for PIX payments of event.
func (c *MessageComposer) PixKey(event *domain.EventConfig) string {
	if event == nil || event.PaymentInfo == nil || strings.TrimSpace(*event.PaymentInfo) == "" {
		return c.defaultPixKey
	}
	return strings.TrimSpace(*event.PaymentInfo)
}

// Compose renders the message for a registrant of event.
func (c *MessageComposer) Compose(event *domain.EventConfig, in domain.RegistrationInput, receiptPresent bool) string {
	in = in.Normalized()

	var date, value string
	if event != nil {
		date = c.locale.FormatDate(event.Date)
		value = c.locale.FormatValue(event.Value)
	} else {
		date = c.locale.FormatDate(nil)
		value = c.locale.FormatValue(nil)
	}

	lines := []string{
		"🙏 *INSCRIÇÃO CONFIRMADA*",
		"✨ *" + EventName(event) + "* ✨",
		"📅 Data: " + date,
		"",
		"👤 *Dados do Inscrito:*",
		"📝 Nome: " + in.FullName,
		"📱 Telefone: " + in.Phone,
		"",
		"💳 *Forma de Pagamento:*",
	}

	if strategy, ok := domain.LookupPaymentStrategy(in.PaymentMethod); ok {
		details := domain.PaymentDetails{Value: value, ReceiptPresent: receiptPresent}
		if strategy.ShowsPaymentInfo {
			details.PixKey = c.PixKey(event)
		}
		lines = append(lines, strategy.Lines(details)...)
	} else {
		lines = append(lines, "💰 Valor: "+value, "📞 Forma de pagamento a combinar")
	}

	lines = append(lines,
		"",
		"🕊️ *Que Deus abençoe sua participação!* 🙏",
		"⭐ Aguardamos você com muito carinho! ⭐",
	)
	return strings.Join(lines, "\n")
}
