package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"eventregistration/internal/domain"
)

// submissionState names the steps of one submission, for tracing.
type submissionState string

const (
	stateValidating  submissionState = "validating"
	stateUploading   submissionState = "uploading"
	statePersisting  submissionState = "persisting"
	stateComposing   submissionState = "composing"
	stateDispatching submissionState = "dispatching"
	stateIdle        submissionState = "idle"
)

// RegistrationDeps wires the collaborators of the submission chain.
// Notifier and Observer are optional.
type RegistrationDeps struct {
	Catalog    domain.EventCatalog
	Uploader   *ReceiptUploader
	Persister  *RegistrationPersister
	Composer   *MessageComposer
	Links      *HandoffLinkBuilder
	Dispatcher domain.Dispatcher
	Notifier   domain.RegistrationNotifier
	Observer   SubmissionObserver
	Policy     domain.ReceiptPolicy
	Logger     *slog.Logger
	Timeout    time.Duration
}

type registrationService struct {
	RegistrationDeps

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewRegistrationService returns the submission coordinator.
func NewRegistrationService(deps RegistrationDeps) domain.RegistrationService {
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	return &registrationService{
		RegistrationDeps: deps,
		inFlight:         make(map[string]struct{}),
	}
}

func (s *registrationService) acquire(sessionKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionKey]; busy {
		return false
	}
	s.inFlight[sessionKey] = struct{}{}
	return true
}

func (s *registrationService) release(sessionKey string) {
	s.mu.Lock()
	delete(s.inFlight, sessionKey)
	s.mu.Unlock()
}

// Submit runs Validating → Uploading (optional) → Persisting → Composing → Dispatching.
// A failing step stops the chain; nothing after it runs. The guard only covers
// one session on this process; two sessions can still submit the same person twice.
func (s *registrationService) Submit(ctx context.Context, sessionKey string, in domain.RegistrationInput) (*domain.SubmissionResult, error) {
	if !s.acquire(sessionKey) {
		s.Observer.SubmissionFinished(OutcomeBusy, 0)
		return nil, domain.ErrSubmissionInProgress
	}
	defer s.release(sessionKey)

	// Submissions cannot be cancelled: a client that goes away abandons the
	// result, not the write.
	ctx = context.WithoutCancel(ctx)
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, outcome, err := s.run(ctx, in)
	s.Observer.SubmissionFinished(outcome, time.Since(start))
	return res, err
}

func (s *registrationService) run(ctx context.Context, in domain.RegistrationInput) (*domain.SubmissionResult, string, error) {
	in = in.Normalized()

	s.trace(ctx, stateValidating)
	// Local constraints first so an incomplete form never touches the store.
	// An unknown event is only reported once the local fields are complete.
	if err := in.Validate(func(string) bool { return true }, s.Policy); err != nil {
		return nil, OutcomeInvalid, err
	}
	event, err := s.Catalog.Get(ctx, in.EventID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.Logger.ErrorContext(ctx, "resolve event failed", "event_id", in.EventID, "err", err)
		return nil, OutcomePersistence, &domain.PersistenceError{Op: "resolve event", Err: err}
	}
	snapshot := event.Clone()
	lookup := func(id string) bool { return snapshot != nil && snapshot.ID == id }
	if err := in.Validate(lookup, s.Policy); err != nil {
		return nil, OutcomeInvalid, err
	}

	var receiptRef *string
	if s.Uploader.ShouldUpload(in) {
		s.trace(ctx, stateUploading)
		f := in.EffectiveReceipt()
		started := time.Now()
		url, err := s.Uploader.Upload(ctx, f)
		if err != nil {
			s.Logger.ErrorContext(ctx, "receipt upload failed", "event_id", snapshot.ID, "err", err)
			return nil, OutcomeUpload, err
		}
		s.Observer.ReceiptUploaded(f.Size(), time.Since(started))
		receiptRef = &url
	}

	s.trace(ctx, statePersisting)
	reg, err := s.Persister.Persist(ctx, in, snapshot.ID, receiptRef)
	if errors.Is(err, domain.ErrNotFound) {
		// The event was removed after it resolved; retrying cannot succeed and
		// any cached copy of the collection is stale.
		s.Logger.WarnContext(ctx, "event removed during submission", "event_id", snapshot.ID, "err", err)
		s.Catalog.Invalidate()
		return nil, OutcomeInvalid, domain.UnknownEventError()
	}
	if err != nil {
		s.Logger.ErrorContext(ctx, "persist registration failed", "event_id", snapshot.ID, "err", err)
		return nil, OutcomePersistence, err
	}

	s.trace(ctx, stateComposing)
	message := s.Composer.Compose(snapshot, in, receiptRef != nil)
	link := s.Links.Link(message)

	s.trace(ctx, stateDispatching)
	s.Dispatcher.Open(ctx, link)

	if s.Notifier != nil {
		if err := s.Notifier.NotifyRegistration(ctx, snapshot, reg); err != nil {
			s.Logger.WarnContext(ctx, "organizer notification failed", "registration_id", reg.ID, "err", err)
		}
	}

	s.trace(ctx, stateIdle)
	s.Logger.InfoContext(ctx, "registration submitted",
		"registration_id", reg.ID,
		"event_id", reg.EventID,
		"payment_method", reg.PaymentMethod,
		"receipt", receiptRef != nil,
	)
	return &domain.SubmissionResult{
		Registration: reg,
		Message:      message,
		HandoffURL:   link,
	}, OutcomeSuccess, nil
}

func (s *registrationService) trace(ctx context.Context, state submissionState) {
	s.Logger.DebugContext(ctx, "submission state", "state", string(state))
}
