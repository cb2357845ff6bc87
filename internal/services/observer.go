package services

import (
	"time"

	"eventregistration/internal/domain"
)

// Submission outcomes reported to a SubmissionObserver.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "validation_error"
	OutcomeUpload      = "upload_error"
	OutcomePersistence = "persistence_error"
	OutcomeBusy        = "busy"
)

// SubmissionObserver receives submission outcomes, e.g. for metrics.
type SubmissionObserver interface {
	SubmissionFinished(outcome string, elapsed time.Duration)
	ReceiptUploaded(bytes int64, elapsed time.Duration)
}

// ResolverObserver receives event resolution outcomes.
type ResolverObserver interface {
	EventsLoaded(status domain.LoadStatus)
	EventNotFound()
}

type nopObserver struct{}

func (nopObserver) SubmissionFinished(string, time.Duration) {}
func (nopObserver) ReceiptUploaded(int64, time.Duration) {}
func (nopObserver) EventsLoaded(domain.LoadStatus) {}
func (nopObserver) EventNotFound() {}
