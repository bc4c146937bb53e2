package metrics

import (
	"errors"

	coremetrics "github.com/Cavendish02/AI-Factory-Robots/core/metrics"
)

// MultiSink fans records out to several sinks. Errors are joined, recording
// continues past a failing sink.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink combines the given sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordAssignment(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordOutcome(rec coremetrics.OutcomeRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordOutcome(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordFleet(available int) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordFleet(available); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
