package domain

import (
	"context"
	"time"
)

// EventConfig is a single schedulable event's display and payment metadata.
// It is owned by the admin tooling; this service only reads it.
type EventConfig struct {
	ID          string     `json:"id"`
	Name        *string    `json:"name"`
	Date        *time.Time `json:"date"`
	Value       *float64   `json:"value"`
	PaymentInfo *string    `json:"payment_info"`
	BannerRef   *string    `json:"banner_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so a submission can hold a snapshot that later
// changes to the backing collection cannot touch.
func (e *EventConfig) Clone() *EventConfig {
	if e == nil {
		return nil
	}
	c := *e
	if e.Name != nil {
		v := *e.Name
		c.Name = &v
	}
	if e.Date != nil {
		v := *e.Date
		c.Date = &v
	}
	if e.Value != nil {
		v := *e.Value
		c.Value = &v
	}
	if e.PaymentInfo != nil {
		v := *e.PaymentInfo
		c.PaymentInfo = &v
	}
	if e.BannerRef != nil {
		v := *e.BannerRef
		c.BannerRef = &v
	}
	return &c
}

// EventConfigRepository defines read access to event configurations.
// Ordering and lookup by id are done over the listed collection.
type EventConfigRepository interface {
	List(ctx context.Context) ([]*EventConfig, error)
}

// EventConfigInvalidator is implemented by repositories that keep event
// configuration in memory.
type EventConfigInvalidator interface {
	Invalidate()
}

// LoadStatus tags the outcome of loading the event collection.
type LoadStatus string

const (
	LoadStatusLoaded LoadStatus = "loaded"
	LoadStatusEmpty  LoadStatus = "empty"
	LoadStatusError  LoadStatus = "error"
)

// Selection is the list-mode view of the event collection: events ordered by
// date with undated events last, and the entry selected by default.
type Selection struct {
	Events  []*EventConfig
	Default *EventConfig
}

// Empty reports whether there are no events to choose from.
func (s Selection) Empty() bool { return len(s.Events) == 0 }

// LoadResult is the tagged outcome of the explicit event initialization step.
type LoadResult struct {
	Status    LoadStatus
	Selection Selection
	Err       error
}

// EventCatalog loads and resolves event configurations for the pages and the form.
type EventCatalog interface {
	Load(ctx context.Context) LoadResult
	Current(ctx context.Context) (*EventConfig, bool, error)
	Get(ctx context.Context, id string) (*EventConfig, error)
	// Invalidate forgets any in-memory copy so the next read sees the store.
	Invalidate()
}
