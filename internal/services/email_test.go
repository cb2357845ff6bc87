package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

type fakeMailer struct {
	to, subject, html, text string
	calls                   int
	err                     error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.calls++
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

type fakeRenderer struct {
	name string
	data any
	err  error
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	r.name, r.data = name, data
	if r.err != nil {
		return "", "", "", r.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func pendingRegistration() *domain.Registration {
	reg := domain.NewRegistration("ev-1", "Ana", "48999990000", domain.PaymentPix, strPtr("https://cdn.test/r.pdf"),
		time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC))
	reg.ID = "reg-1"
	return reg
}

func TestEmailNotifier_SendsRenderedTemplate(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	n := NewEmailNotifier(mailer, renderer, BrazilianPortuguese(brt), "org@igreja.test", discardLogger())

	err := n.NotifyRegistration(context.Background(), encontro(), pendingRegistration())
	require.NoError(t, err)

	assert.Equal(t, "registration_received", renderer.name)
	data, ok := renderer.data.(*domain.RegistrationEmailData)
	require.True(t, ok)
	assert.Equal(t, "Encontro", data.EventName)
	assert.Equal(t, "10 de março de 2025 às 19:00", data.EventDate)
	assert.Equal(t, "R$ 50,00", data.Value)
	assert.Equal(t, "PIX", data.PaymentMethod)
	assert.Equal(t, "https://cdn.test/r.pdf", data.ReceiptURL)
	assert.Equal(t, "01 de março de 2025 às 12:00", data.RegisteredAt)

	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "org@igreja.test", mailer.to)
	assert.Equal(t, "subject", mailer.subject)
}

func TestEmailNotifier_NoRecipientIsNoop(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewEmailNotifier(mailer, &fakeRenderer{}, BrazilianPortuguese(brt), "", discardLogger())

	require.NoError(t, n.NotifyRegistration(context.Background(), encontro(), pendingRegistration()))
	assert.Equal(t, 0, mailer.calls)
}

func TestEmailNotifier_Errors(t *testing.T) {
	t.Run("render", func(t *testing.T) {
		mailer := &fakeMailer{}
		n := NewEmailNotifier(mailer, &fakeRenderer{err: errors.New("missing template")}, BrazilianPortuguese(brt), "org@igreja.test", discardLogger())
		err := n.NotifyRegistration(context.Background(), encontro(), pendingRegistration())
		assert.ErrorContains(t, err, "missing template")
		assert.Equal(t, 0, mailer.calls)
	})
	t.Run("send", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("throttled")}
		n := NewEmailNotifier(mailer, &fakeRenderer{}, BrazilianPortuguese(brt), "org@igreja.test", discardLogger())
		err := n.NotifyRegistration(context.Background(), encontro(), pendingRegistration())
		assert.ErrorContains(t, err, "throttled")
	})
}

func TestEmailNotifier_FallbacksWithoutEvent(t *testing.T) {
	renderer := &fakeRenderer{}
	n := NewEmailNotifier(&fakeMailer{}, renderer, BrazilianPortuguese(brt), "org@igreja.test", discardLogger())

	require.NoError(t, n.NotifyRegistration(context.Background(), nil, pendingRegistration()))
	data := renderer.data.(*domain.RegistrationEmailData)
	assert.Equal(t, GenericEventName, data.EventName)
	assert.Equal(t, "A confirmar", data.EventDate)
	assert.Equal(t, "Consultar", data.Value)
}
