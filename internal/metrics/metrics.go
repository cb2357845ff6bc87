package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventregistration/internal/domain"
)

const defaultNamespace = "eventregistration"

// Observer exports submission and event-loading telemetry to Prometheus. It
// satisfies services.SubmissionObserver and services.ResolverObserver.
type Observer struct {
	submissions        *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
	receiptBytes       prometheus.Counter
	receiptDuration    prometheus.Histogram
	eventLoads         *prometheus.CounterVec
	eventNotFound      prometheus.Counter
	httpDuration       *prometheus.HistogramVec
}

// NewObserver registers the collectors on reg (the default registerer when nil).
func NewObserver(namespace string, reg prometheus.Registerer) (*Observer, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &Observer{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Registration submissions by outcome.",
		}, []string{"outcome"}),
		submissionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time from validation to dispatch of a registration submission.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		receiptBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_uploaded_bytes_total",
			Help:      "Cumulative size of payment receipts stored.",
		}),
		receiptDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "receipt_upload_duration_seconds",
			Help:      "Latency of receipt uploads to the blob store.",
			Buckets:   prometheus.DefBuckets,
		}),
		eventLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_loads_total",
			Help:      "Event catalog loads by status.",
		}, []string{"status"}),
		eventNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_not_found_total",
			Help:      "Lookups for an event id that does not exist.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
	var err error
	if o.submissions, err = register(reg, o.submissions); err != nil {
		return nil, err
	}
	if o.submissionDuration, err = register(reg, o.submissionDuration); err != nil {
		return nil, err
	}
	if o.receiptBytes, err = register(reg, o.receiptBytes); err != nil {
		return nil, err
	}
	if o.receiptDuration, err = register(reg, o.receiptDuration); err != nil {
		return nil, err
	}
	if o.eventLoads, err = register(reg, o.eventLoads); err != nil {
		return nil, err
	}
	if o.eventNotFound, err = register(reg, o.eventNotFound); err != nil {
		return nil, err
	}
	if o.httpDuration, err = register(reg, o.httpDuration); err != nil {
		return nil, err
	}
	return o, nil
}

// register adds c to reg. When an identical collector is already registered
// (a second Observer on the same registry) the existing one is returned.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

// SubmissionFinished counts one submission and its latency.
func (o *Observer) SubmissionFinished(outcome string, elapsed time.Duration) {
	if o == nil {
		return
	}
	o.submissions.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		o.submissionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	}
}

func (o *Observer) ReceiptUploaded(bytes int64, elapsed time.Duration) {
	if o == nil {
		return
	}
	o.receiptBytes.Add(float64(bytes))
	o.receiptDuration.Observe(elapsed.Seconds())
}

func (o *Observer) EventsLoaded(status domain.LoadStatus) {
	if o == nil {
		return
	}
	o.eventLoads.WithLabelValues(string(status)).Inc()
}

func (o *Observer) EventNotFound() {
	if o == nil {
		return
	}
	o.eventNotFound.Inc()
}

// InstrumentHandler records request latency for next.
func (o *Observer) InstrumentHandler(next http.Handler) http.Handler {
	if o == nil {
		return next
	}
	return promhttp.InstrumentHandlerDuration(o.httpDuration, next)
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
