package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventregistration/internal/domain"
)

// Postgres SQLSTATE codes the repositories react to.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, name, phone, payment_method, receipt_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var receipt sql.NullString
	if reg.ReceiptRef != nil {
		receipt = sql.NullString{String: *reg.ReceiptRef, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.Name, reg.Phone, string(reg.PaymentMethod), receipt, string(reg.Status), reg.CreatedAt,
	).Scan(&reg.ID)
	return classify(err)
}

// classify wraps constraint failures in domain.ErrConstraintViolation so callers
// can tell a rejected row from an unreachable database. The only foreign key is
// event_id, so a foreign key failure also matches domain.ErrNotFound.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: event %w: %s (%s)", domain.ErrConstraintViolation, domain.ErrNotFound, pqErr.Message, pqErr.Constraint)
		case pgNotNullViolation, pgUniqueViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s (%s)", domain.ErrConstraintViolation, pqErr.Message, pqErr.Constraint)
		}
	}
	return err
}
