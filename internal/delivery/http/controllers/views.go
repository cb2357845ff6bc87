package controllers

import (
	"time"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
	"eventregistration/internal/services"
)

// Navigation signals the browser front end acts on.
const (
	NavigationRedirectEventList    = "redirect_event_list"
	NavigationShowSuccessResetForm = "show_success_reset_form"
)

// Notice is the short human-readable message the front end shows as a toast.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var (
	noticeSuccess = Notice{
		Title:       "Inscrição realizada com sucesso! 🙏",
		Description: "Seus dados foram salvos e você será redirecionado para o WhatsApp.",
	}
	noticeFailure = Notice{
		Title:       "Erro na inscrição",
		Description: "Ocorreu um erro. Tente novamente.",
	}
	noticeRequired = Notice{
		Title:       "Campos obrigatórios",
		Description: "Por favor, preencha nome e telefone.",
	}
)

// Envelope is APIResponse plus the notice and navigation signals.
// swagger:model Envelope
type Envelope struct {
	Data       any               `json:"data"`
	Error      *helpers.APIError `json:"error"`
	Notice     *Notice           `json:"notice,omitempty"`
	Navigation string            `json:"navigation,omitempty"`
}

// EventView is an EventConfig with the display strings the pages render.
type EventView struct {
	ID           string     `json:"id"`
	Name         *string    `json:"name"`
	DisplayName  string     `json:"display_name"`
	Date         *time.Time `json:"date"`
	DisplayDate  string     `json:"display_date"`
	Value        *float64   `json:"value"`
	DisplayValue string     `json:"display_value"`
	PaymentInfo  *string    `json:"payment_info"`
	BannerURL    *string    `json:"banner_url"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func newEventView(e *domain.EventConfig, locale services.Locale) *EventView {
	if e == nil {
		return nil
	}
	return &EventView{
		ID:           e.ID,
		Name:         e.Name,
		DisplayName:  services.EventName(e),
		Date:         e.Date,
		DisplayDate:  locale.FormatDate(e.Date),
		Value:        e.Value,
		DisplayValue: locale.FormatValue(e.Value),
		PaymentInfo:  e.PaymentInfo,
		BannerURL:    e.BannerRef,
		UpdatedAt:    e.UpdatedAt,
	}
}
