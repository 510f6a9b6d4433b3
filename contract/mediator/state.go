package mediator

import "github.com/google/uuid"

// ErrorState is the mutable slot threaded through the error handlers resolved for
// a single failure. It is created fresh per failure and discarded once the failure
// is handled or every candidate has run.
type ErrorState struct {
	id      uuid.UUID
	handled bool
	result  any
}

// NewErrorState returns an unhandled state with a fresh incident id.
func NewErrorState() *ErrorState {
	return &ErrorState{id: uuid.New()}
}

// SetHandled marks the failure as handled. Remaining error handlers are skipped
// and, for requests, result is returned to the sender.
func (s *ErrorState) SetHandled(result any) {
	s.result = result
	s.handled = true
}

// Handled reports whether an error handler has called SetHandled.
func (s *ErrorState) Handled() bool { return s.handled }

// Result returns the value passed to SetHandled, or nil.
func (s *ErrorState) Result() any { return s.result }

// ID correlates log lines and metrics emitted for the same failure.
func (s *ErrorState) ID() uuid.UUID { return s.id }
