package postgres

import (
	"context"
	"database/sql"

	"eventregistration/internal/domain"
)

const eventConfigColumns = `id, event_name, event_date, event_value, payment_info, banner_url, created_at, updated_at`

type eventConfigRepository struct {
	DB *sql.DB
}

func NewEventConfigRepository(db *sql.DB) domain.EventConfigRepository {
	return &eventConfigRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEventConfig(row rowScanner) (*domain.EventConfig, error) {
	e := &domain.EventConfig{}
	var nameNull, paymentNull, bannerNull sql.NullString
	var dateNull sql.NullTime
	var valueNull sql.NullFloat64
	err := row.Scan(
		&e.ID, &nameNull, &dateNull, &valueNull, &paymentNull, &bannerNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if nameNull.Valid {
		e.Name = &nameNull.String
	}
	if dateNull.Valid {
		e.Date = &dateNull.Time
	}
	if valueNull.Valid {
		e.Value = &valueNull.Float64
	}
	if paymentNull.Valid {
		e.PaymentInfo = &paymentNull.String
	}
	if bannerNull.Valid {
		e.BannerRef = &bannerNull.String
	}
	return e, nil
}

// List returns every event configuration. Ordering for display is the
// resolvers' job; rows come back by id so reads are repeatable.
func (r *eventConfigRepository) List(ctx context.Context) ([]*domain.EventConfig, error) {
	query := `SELECT ` + eventConfigColumns + ` FROM event_config ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.EventConfig, 0)
	for rows.Next() {
		e, err := scanEventConfig(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
