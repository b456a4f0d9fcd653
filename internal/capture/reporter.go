package capture

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Reporter receives every normalized diagnostic, regardless of where the
// failure was caught.
type Reporter interface {
	Report(ctx context.Context, d Diagnostic)
}

// ReportStore persists diagnostics for later inspection.
type ReportStore interface {
	Save(ctx context.Context, d Diagnostic) error
}

// Sink is the production reporter: it logs the diagnostic, counts it, and
// persists it through the report store.
type Sink struct {
	log      *logrus.Logger
	store    ReportStore
	captured *prometheus.CounterVec
}

// NewSink builds a Sink and registers its metrics on reg.
func NewSink(log *logrus.Logger, store ReportStore, reg prometheus.Registerer) *Sink {
	captured := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "faultline_captured_total",
		Help: "Number of diagnostics captured, by fault kind and origin.",
	}, []string{"kind", "origin"})
	reg.MustRegister(captured)

	return &Sink{log: log, store: store, captured: captured}
}

func (s *Sink) Report(ctx context.Context, d Diagnostic) {
	s.captured.WithLabelValues(string(d.Kind), string(d.Origin)).Inc()

	s.log.WithFields(logrus.Fields{
		"report_id": d.ID,
		"fault_id":  d.FaultID,
		"kind":      d.Kind,
		"origin":    d.Origin,
	}).Errorf("captured failure: %s", d.Message)

	if err := s.store.Save(ctx, d); err != nil {
		s.log.Warnf("persist diagnostic %s: %v", d.ID, err)
	}
}
