package services

import (
	"context"

	"eventregistration/internal/clock"
	"eventregistration/internal/domain"
)

// RegistrationPersister writes exactly one pending registration per call.
// It does not deduplicate: a retry after a failure creates a new row.
type RegistrationPersister struct {
	repo  domain.RegistrationRepository
	clock clock.Clock
}

// NewRegistrationPersister returns a persister writing through repo.
func NewRegistrationPersister(repo domain.RegistrationRepository, clk clock.Clock) *RegistrationPersister {
	return &RegistrationPersister{repo: repo, clock: clk}
}

// Persist stores a registration for the validated input. receiptRef is nil
// unless a receipt was uploaded. Failures are *domain.PersistenceError.
func (p *RegistrationPersister) Persist(ctx context.Context, in domain.RegistrationInput, eventID string, receiptRef *string) (*domain.Registration, error) {
	in = in.Normalized()
	reg := domain.NewRegistration(eventID, in.FullName, in.Phone, in.PaymentMethod, receiptRef, p.clock.Now())
	if err := p.repo.Create(ctx, reg); err != nil {
		return nil, &domain.PersistenceError{Op: "insert", Err: err}
	}
	return reg, nil
}
