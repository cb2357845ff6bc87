package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEventRepo struct {
	events []*domain.EventConfig
	err    error
	calls  int
}

func (r *countingEventRepo) List(ctx context.Context) ([]*domain.EventConfig, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.events, nil
}

func namedEvent(id, name string) *domain.EventConfig {
	return &domain.EventConfig{ID: id, Name: &name}
}

func TestCachedEventConfigRepository_ServesRepeatReadsFromCache(t *testing.T) {
	ctx := context.Background()
	next := &countingEventRepo{events: []*domain.EventConfig{namedEvent("ev-1", "Encontro")}}
	repo := NewCachedEventConfigRepository(next, time.Minute)

	for i := 0; i < 3; i++ {
		events, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedEventConfigRepository_Invalidate(t *testing.T) {
	ctx := context.Background()
	next := &countingEventRepo{events: []*domain.EventConfig{namedEvent("ev-1", "Encontro")}}
	repo := NewCachedEventConfigRepository(next, time.Minute)

	_, err := repo.List(ctx)
	require.NoError(t, err)

	next.events = nil
	inv, ok := repo.(domain.EventConfigInvalidator)
	require.True(t, ok)
	inv.Invalidate()

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 2, next.calls)
}

func TestCachedEventConfigRepository_NonPositiveTTLDisablesCaching(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		next := &countingEventRepo{events: []*domain.EventConfig{namedEvent("ev-1", "Encontro")}}
		repo := NewCachedEventConfigRepository(next, ttl)

		// No cache means no janitor goroutine either.
		assert.Same(t, next, repo)

		for i := 0; i < 2; i++ {
			_, err := repo.List(context.Background())
			require.NoError(t, err)
		}
		assert.Equal(t, 2, next.calls)
	}
}

func TestCachedEventConfigRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	next := &countingEventRepo{events: []*domain.EventConfig{namedEvent("ev-1", "Encontro")}}
	repo := NewCachedEventConfigRepository(next, time.Minute)

	_, err := repo.List(ctx)
	require.NoError(t, err)

	hit, err := repo.List(ctx)
	require.NoError(t, err)
	*hit[0].Name = "mutated"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Encontro", *again[0].Name)
}

func TestCachedEventConfigRepository_DoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	next := &countingEventRepo{err: errors.New("db down")}
	repo := NewCachedEventConfigRepository(next, time.Minute)

	_, err := repo.List(ctx)
	require.Error(t, err)
	next.err = nil
	next.events = []*domain.EventConfig{namedEvent("ev-1", "Encontro")}

	events, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 2, next.calls)
}
