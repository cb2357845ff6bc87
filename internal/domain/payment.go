package domain

// PaymentMethod is how the registrant pays.
type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentInPerson PaymentMethod = "in_person"
)

// PaymentDetails are the already formatted values a strategy renders.
type PaymentDetails struct {
	PixKey         string
	Value          string
	ReceiptPresent bool
}

// PaymentStrategy is everything that differs between payment methods. Both the
// receipt upload decision and the confirmation message read it from the same table.
type PaymentStrategy struct {
	Method           PaymentMethod
	Label            string
	AcceptsReceipt   bool
	ShowsPaymentInfo bool
	Lines            func(d PaymentDetails) []string
}

var paymentStrategies = map[PaymentMethod]PaymentStrategy{
	PaymentPix: {
		Method:           PaymentPix,
		Label:            "PIX",
		AcceptsReceipt:   true,
		ShowsPaymentInfo: true,
		Lines: func(d PaymentDetails) []string {
			receipt := "⚠️ *IMPORTANTE: ENVIE O COMPROVANTE NESTA CONVERSA*"
			if d.ReceiptPresent {
				receipt = "✅ Comprovante anexado no formulário"
			}
			return []string{
				"💳 *Pagamento via PIX*",
				"🔑 Chave PIX: " + d.PixKey,
				"💰 Valor: " + d.Value,
				receipt,
			}
		},
	},
	PaymentInPerson: {
		Method: PaymentInPerson,
		Label:  "Presencial",
		Lines: func(d PaymentDetails) []string {
			return []string{
				"💵 *Pagamento Presencial*",
				"💰 Valor: " + d.Value,
				"🏢 Pagamento será realizado no local do evento",
			}
		},
	},
}

// LookupPaymentStrategy returns the strategy for m.
func LookupPaymentStrategy(m PaymentMethod) (PaymentStrategy, bool) {
	s, ok := paymentStrategies[m]
	return s, ok
}

// PaymentMethods lists the accepted methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentPix, PaymentInPerson}
}
