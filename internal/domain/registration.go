package domain

import (
	"context"
	"path"
	"strings"
	"time"
)

// RegistrationStatus is the lifecycle state of a persisted registration.
type RegistrationStatus string

// StatusPending is the only status this service writes.
const StatusPending RegistrationStatus = "pending"

// Registration is a persisted record of one person's intent to attend, pending confirmation.
// swagger:model Registration
type Registration struct {
	ID            string             `json:"id"`
	EventID       string             `json:"event_id"`
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	ReceiptRef    *string            `json:"receipt_url"`
	Status        RegistrationStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewRegistration returns a pending Registration. ID is set by the repository on create.
func NewRegistration(eventID, name, phone string, method PaymentMethod, receiptRef *string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:       eventID,
		Name:          name,
		Phone:         phone,
		PaymentMethod: method,
		ReceiptRef:    receiptRef,
		Status:        StatusPending,
		CreatedAt:     createdAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
}

// ReceiptFile is an optional proof-of-payment attachment.
type ReceiptFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the attachment length in bytes.
func (f *ReceiptFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// Ext returns the lowercased extension without the dot, or "" when the filename has none.
func (f *ReceiptFile) Ext() string {
	if f == nil {
		return ""
	}
	ext := path.Ext(strings.TrimSpace(f.Filename))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// RegistrationInput is the transient form state for one session. It is a value:
// every With* method returns an edited copy and leaves the receiver untouched.
type RegistrationInput struct {
	FullName      string
	Phone         string
	PaymentMethod PaymentMethod
	Receipt       *ReceiptFile
	EventID       string
}

// NewRegistrationInput returns the initial form state: PIX selected, nothing filled in.
func NewRegistrationInput(eventID string) RegistrationInput {
	return RegistrationInput{PaymentMethod: PaymentPix, EventID: eventID}
}

func (in RegistrationInput) WithFullName(name string) RegistrationInput {
	in.FullName = name
	return in
}

func (in RegistrationInput) WithPhone(phone string) RegistrationInput {
	in.Phone = phone
	return in
}

// WithPaymentMethod switches the payment method. A chosen receipt is kept so
// switching back restores it.
func (in RegistrationInput) WithPaymentMethod(m PaymentMethod) RegistrationInput {
	in.PaymentMethod = m
	return in
}

func (in RegistrationInput) WithReceipt(f *ReceiptFile) RegistrationInput {
	in.Receipt = f
	return in
}

func (in RegistrationInput) WithEventID(id string) RegistrationInput {
	in.EventID = id
	return in
}

// Reset returns the blank form state kept after a successful submission.
// The event selection survives so the visitor stays on the same event.
func (in RegistrationInput) Reset() RegistrationInput {
	return NewRegistrationInput(in.EventID)
}

// Normalized trims the text fields and collapses inner whitespace in the name.
// An empty payment method becomes PIX, the form's default.
func (in RegistrationInput) Normalized() RegistrationInput {
	in.FullName = strings.Join(strings.Fields(in.FullName), " ")
	in.Phone = strings.TrimSpace(in.Phone)
	in.EventID = strings.TrimSpace(in.EventID)
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(string(in.PaymentMethod))))
	if m == "" {
		m = PaymentPix
	}
	in.PaymentMethod = m
	return in
}

// EffectiveReceipt is the receipt that takes part in submission: nil when no
// file was chosen or the payment method does not accept receipts.
func (in RegistrationInput) EffectiveReceipt() *ReceiptFile {
	if in.Receipt == nil {
		return nil
	}
	s, ok := LookupPaymentStrategy(in.PaymentMethod)
	if !ok || !s.AcceptsReceipt {
		return nil
	}
	return in.Receipt
}

// EventLookup reports whether an event id resolves against the loaded snapshot.
type EventLookup func(id string) bool

// ReceiptPolicy bounds what a receipt attachment may be.
type ReceiptPolicy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

func (p ReceiptPolicy) allows(ext string) bool {
	if len(p.AllowedExtensions) == 0 {
		return true
	}
	for _, a := range p.AllowedExtensions {
		if strings.EqualFold(strings.TrimPrefix(a, "."), ext) {
			return true
		}
	}
	return false
}

// Validate checks the normalized input. Constraints are checked in order:
// full_name, phone, event_id, then payment_method and the effective receipt.
// It returns a *ValidationError listing every unmet constraint, or nil.
func (in RegistrationInput) Validate(lookup EventLookup, policy ReceiptPolicy) error {
	in = in.Normalized()
	var fields []FieldError
	if in.FullName == "" {
		fields = append(fields, FieldError{Field: "full_name", Message: "full_name is required"})
	}
	if in.Phone == "" {
		fields = append(fields, FieldError{Field: "phone", Message: "phone is required"})
	}
	switch {
	case in.EventID == "":
		fields = append(fields, FieldError{Field: "event_id", Message: "event_id is required"})
	case lookup == nil || !lookup(in.EventID):
		fields = append(fields, unknownEventField)
	}
	if _, ok := LookupPaymentStrategy(in.PaymentMethod); !ok {
		fields = append(fields, FieldError{Field: "payment_method", Message: "payment_method must be pix or in_person"})
	}
	if f := in.EffectiveReceipt(); f != nil {
		switch {
		case f.Size() == 0:
			fields = append(fields, FieldError{Field: "receipt", Message: "receipt is empty"})
		case policy.MaxBytes > 0 && f.Size() > policy.MaxBytes:
			fields = append(fields, FieldError{Field: "receipt", Message: "receipt is too large"})
		case !policy.allows(f.Ext()):
			fields = append(fields, FieldError{Field: "receipt", Message: "receipt file type is not accepted"})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// SubmissionResult is what a completed submission hands back to the host.
type SubmissionResult struct {
	Registration *Registration `json:"registration"`
	Message      string        `json:"message"`
	HandoffURL   string        `json:"handoff_url"`
}

// RegistrationService runs the submission chain for one session.
type RegistrationService interface {
	// Submit validates, optionally uploads the receipt, persists the registration,
	// composes the confirmation and dispatches the handoff link. A second call for
	// the same session while one is in flight fails with ErrSubmissionInProgress.
	Submit(ctx context.Context, sessionKey string, in RegistrationInput) (*SubmissionResult, error)
}
