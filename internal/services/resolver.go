package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"eventregistration/internal/domain"
)

// ResolveByID returns the event with the given id, or a *domain.ResolutionError.
func ResolveByID(events []*domain.EventConfig, id string) (*domain.EventConfig, error) {
	for _, e := range events {
		if e != nil && e.ID == id {
			return e, nil
		}
	}
	return nil, &domain.ResolutionError{EventID: id}
}

// ResolveCurrent returns the most recently updated event. Ties are broken by id
// so the answer does not depend on storage order. ok is false for an empty collection.
func ResolveCurrent(events []*domain.EventConfig) (*domain.EventConfig, bool) {
	var current *domain.EventConfig
	for _, e := range events {
		if e == nil {
			continue
		}
		if current == nil ||
			e.UpdatedAt.After(current.UpdatedAt) ||
			(e.UpdatedAt.Equal(current.UpdatedAt) && e.ID < current.ID) {
			current = e
		}
	}
	return current, current != nil
}

// ResolveSelectable orders events by ascending date for the picker. Events
// without a date come last; equal keys are ordered by id. The first entry is
// the default selection.
func ResolveSelectable(events []*domain.EventConfig) domain.Selection {
	out := make([]*domain.EventConfig, 0, len(events))
	for _, e := range events {
		if e != nil {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Date == nil && b.Date == nil:
			return a.ID < b.ID
		case a.Date == nil:
			return false
		case b.Date == nil:
			return true
		case !a.Date.Equal(*b.Date):
			return a.Date.Before(*b.Date)
		default:
			return a.ID < b.ID
		}
	})
	sel := domain.Selection{Events: out}
	if len(out) > 0 {
		sel.Default = out[0]
	}
	return sel
}

type eventCatalog struct {
	repo     domain.EventConfigRepository
	logger   *slog.Logger
	observer ResolverObserver
}

// NewEventCatalog returns an EventCatalog reading from repo.
func NewEventCatalog(repo domain.EventConfigRepository, logger *slog.Logger, observer ResolverObserver) domain.EventCatalog {
	if observer == nil {
		observer = nopObserver{}
	}
	return &eventCatalog{repo: repo, logger: logger, observer: observer}
}

// Load is the explicit initialization step hosts call once to populate the
// event picker. Failures are reported in the result, not returned.
func (c *eventCatalog) Load(ctx context.Context) domain.LoadResult {
	events, err := c.repo.List(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "load events failed", "err", err)
		c.observer.EventsLoaded(domain.LoadStatusError)
		return domain.LoadResult{Status: domain.LoadStatusError, Err: fmt.Errorf("list events: %w", err)}
	}
	sel := ResolveSelectable(events)
	if sel.Empty() {
		c.observer.EventsLoaded(domain.LoadStatusEmpty)
		return domain.LoadResult{Status: domain.LoadStatusEmpty, Selection: sel}
	}
	c.observer.EventsLoaded(domain.LoadStatusLoaded)
	return domain.LoadResult{Status: domain.LoadStatusLoaded, Selection: sel}
}

func (c *eventCatalog) Current(ctx context.Context) (*domain.EventConfig, bool, error) {
	events, err := c.repo.List(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list events: %w", err)
	}
	event, ok := ResolveCurrent(events)
	return event, ok, nil
}

func (c *eventCatalog) Get(ctx context.Context, id string) (*domain.EventConfig, error) {
	events, err := c.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	event, err := ResolveByID(events, id)
	if err != nil {
		c.observer.EventNotFound()
		return nil, err
	}
	return event, nil
}

func (c *eventCatalog) Invalidate() {
	if inv, ok := c.repo.(domain.EventConfigInvalidator); ok {
		inv.Invalidate()
	}
}
