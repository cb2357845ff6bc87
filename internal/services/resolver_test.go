package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"eventregistration/internal/domain"
)

func ids(events []*domain.EventConfig) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestResolveByID(t *testing.T) {
	events := []*domain.EventConfig{{ID: "a"}, nil, {ID: "b"}}

	got, err := ResolveByID(events, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	_, err = ResolveByID(events, "missing")
	var rerr *domain.ResolutionError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "missing", rerr.EventID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ResolveByID(nil, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveCurrent(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, ok := ResolveCurrent(nil)
	assert.False(t, ok)

	events := []*domain.EventConfig{
		{ID: "old", UpdatedAt: t0},
		{ID: "z-new", UpdatedAt: t0.Add(time.Hour)},
		{ID: "a-new", UpdatedAt: t0.Add(time.Hour)},
	}
	got, ok := ResolveCurrent(events)
	require.True(t, ok)
	assert.Equal(t, "a-new", got.ID)

	// Input order does not matter.
	got, _ = ResolveCurrent([]*domain.EventConfig{events[2], events[0], events[1]})
	assert.Equal(t, "a-new", got.ID)
}

func TestResolveSelectable(t *testing.T) {
	d := func(day int) *time.Time { return timePtr(time.Date(2025, 3, day, 19, 0, 0, 0, time.UTC)) }

	t.Run("empty collection has no default", func(t *testing.T) {
		sel := ResolveSelectable(nil)
		assert.True(t, sel.Empty())
		assert.Nil(t, sel.Default)
		assert.NotNil(t, sel.Events)
	})

	t.Run("ascending date with undated last", func(t *testing.T) {
		events := []*domain.EventConfig{
			{ID: "undated-b"},
			{ID: "late", Date: d(20)},
			{ID: "undated-a"},
			{ID: "early", Date: d(1)},
			{ID: "same-day-b", Date: d(10)},
			{ID: "same-day-a", Date: d(10)},
		}
		sel := ResolveSelectable(events)
		assert.Equal(t, []string{"early", "same-day-a", "same-day-b", "late", "undated-a", "undated-b"}, ids(sel.Events))
		assert.Equal(t, "early", sel.Default.ID)
		assert.Equal(t, "undated-b", events[0].ID, "input slice is not reordered")
	})
}

func TestResolveSelectable_OrderIsIndependentOfInputOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		events := make([]*domain.EventConfig, 0, n)
		for i := 0; i < n; i++ {
			e := &domain.EventConfig{ID: string(rune('a' + i))}
			if rapid.Bool().Draw(t, "dated") {
				e.Date = timePtr(time.Unix(int64(rapid.IntRange(0, 3).Draw(t, "day"))*86400, 0))
			}
			events = append(events, e)
		}
		perm := rapid.Permutation(events).Draw(t, "perm")

		a := ids(ResolveSelectable(events).Events)
		b := ids(ResolveSelectable(perm).Events)
		if len(a) != len(b) {
			t.Fatalf("length mismatch")
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("order differs: %v vs %v", a, b)
			}
		}
		seenUndated := false
		for _, e := range ResolveSelectable(events).Events {
			if e.Date == nil {
				seenUndated = true
			} else if seenUndated {
				t.Fatalf("dated event after undated one")
			}
		}
	})
}

func TestEventCatalog_Load(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		repo       *mockEventConfigRepository
		wantStatus domain.LoadStatus
		wantIDs    []string
	}{
		{
			name:       "no events available",
			repo:       &mockEventConfigRepository{},
			wantStatus: domain.LoadStatusEmpty,
			wantIDs:    []string{},
		},
		{
			name: "loaded and ordered",
			repo: &mockEventConfigRepository{events: []*domain.EventConfig{
				{ID: "undated"},
				{ID: "dated", Date: timePtr(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))},
			}},
			wantStatus: domain.LoadStatusLoaded,
			wantIDs:    []string{"dated", "undated"},
		},
		{
			name:       "store error",
			repo:       &mockEventConfigRepository{err: errors.New("connection refused")},
			wantStatus: domain.LoadStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			catalog := NewEventCatalog(tt.repo, discardLogger(), obs)
			res := catalog.Load(ctx)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, []domain.LoadStatus{tt.wantStatus}, obs.loads)
			if tt.wantStatus == domain.LoadStatusError {
				assert.Error(t, res.Err)
				return
			}
			require.NoError(t, res.Err)
			assert.Equal(t, tt.wantIDs, ids(res.Selection.Events))
		})
	}
}

func TestEventCatalog_Current(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	catalog := NewEventCatalog(&mockEventConfigRepository{}, discardLogger(), nil)
	ev, ok, err := catalog.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, ev)

	catalog = NewEventCatalog(&mockEventConfigRepository{events: []*domain.EventConfig{
		{ID: "a", UpdatedAt: t0}, {ID: "b", UpdatedAt: t0.Add(time.Minute)},
	}}, discardLogger(), nil)
	ev, ok, err = catalog.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", ev.ID)

	// Same update time: the lower id wins whatever the store order.
	catalog = NewEventCatalog(&mockEventConfigRepository{events: []*domain.EventConfig{
		{ID: "d", UpdatedAt: t0}, {ID: "c", UpdatedAt: t0},
	}}, discardLogger(), nil)
	ev, ok, err = catalog.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c", ev.ID)

	catalog = NewEventCatalog(&mockEventConfigRepository{err: errors.New("down")}, discardLogger(), nil)
	_, _, err = catalog.Current(ctx)
	assert.Error(t, err)
}

func TestEventCatalog_Get(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	catalog := NewEventCatalog(&mockEventConfigRepository{events: []*domain.EventConfig{{ID: "ev-1"}}}, discardLogger(), obs)

	ev, err := catalog.Get(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "ev-1", ev.ID)

	_, err = catalog.Get(ctx, "ev-404")
	var rerr *domain.ResolutionError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 1, obs.notFound)

	catalog = NewEventCatalog(&mockEventConfigRepository{err: errors.New("down")}, discardLogger(), obs)
	_, err = catalog.Get(ctx, "ev-1")
	require.Error(t, err)
	assert.False(t, errors.As(err, &rerr))
}

func TestEventCatalog_Invalidate(t *testing.T) {
	repo := &mockEventConfigRepository{}
	NewEventCatalog(repo, discardLogger(), nil).Invalidate()
	assert.Equal(t, 1, repo.invalidated)

	// Repositories without an in-memory copy are left alone.
	NewEventCatalog(plainEventRepo{}, discardLogger(), nil).Invalidate()
}

type plainEventRepo struct{}

func (plainEventRepo) List(ctx context.Context) ([]*domain.EventConfig, error) { return nil, nil }
