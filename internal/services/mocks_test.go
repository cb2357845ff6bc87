package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventregistration/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

type mockEventConfigRepository struct {
	mu     sync.Mutex
	events []*domain.EventConfig
	err    error
	calls  int

	invalidated int
}

func (m *mockEventConfigRepository) List(ctx context.Context) ([]*domain.EventConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := append([]*domain.EventConfig(nil), m.events...)
	return out, nil
}

func (m *mockEventConfigRepository) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
}

func (m *mockEventConfigRepository) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockRegistrationRepository struct {
	mu      sync.Mutex
	created []*domain.Registration
	err     error
	calls   int
	entered chan struct{}
	block   chan struct{}
}

func (m *mockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	reg.ID = "reg-1"
	m.created = append(m.created, reg)
	return nil
}

func (m *mockRegistrationRepository) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
	calls   int
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *mockBlobStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *mockBlobStore) PublicURLFor(key string) string {
	return "https://cdn.test/event-banners/" + key
}

type recordingDispatcher struct {
	mu      sync.Mutex
	targets []string
}

func (d *recordingDispatcher) Open(ctx context.Context, target string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets = append(d.targets, target)
}

func (d *recordingDispatcher) opened() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.targets...)
}

type mockNotifier struct {
	calls int
	err   error
}

func (m *mockNotifier) NotifyRegistration(ctx context.Context, event *domain.EventConfig, reg *domain.Registration) error {
	m.calls++
	return m.err
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
	uploads  []int64
	loads    []domain.LoadStatus
	notFound int
}

func (o *recordingObserver) SubmissionFinished(outcome string, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) ReceiptUploaded(bytes int64, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.uploads = append(o.uploads, bytes)
}

func (o *recordingObserver) EventsLoaded(status domain.LoadStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads = append(o.loads, status)
}

func (o *recordingObserver) EventNotFound() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notFound++
}
