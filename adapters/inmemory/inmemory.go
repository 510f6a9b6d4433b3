package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/next-trace/scg-mediator/kind"
	"github.com/next-trace/scg-mediator/mediator"
)

// Dispatch is one recorded Mediator.Dispatch call.
type Dispatch struct {
	Request  kind.Kind
	Duration time.Duration
	Err      error
}

// Publish is one recorded Mediator.Publish call.
type Publish struct {
	Notification kind.Kind
	Handlers     int
	Duration     time.Duration
	Err          error
}

// Failure is one handler failure after error resolution.
type Failure struct {
	Dispatched kind.Kind
	Failure    kind.Kind
	Handled    bool
}

// Recorder is a thread-safe in-memory sink for mediator hooks.
// It records dispatches, publishes and failures for tests and examples.
type Recorder struct {
	mu         sync.Mutex
	dispatches []Dispatch
	publishes  []Publish
	failures   []Failure
}

// New creates an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Options returns the hooks that feed r.
// Use with mediator.New(logger, rec.Options()...).
func (r *Recorder) Options() []mediator.Option {
	return []mediator.Option{
		mediator.WithOnDispatch(r.OnDispatch),
		mediator.WithOnPublish(r.OnPublish),
		mediator.WithOnFailure(r.OnFailure),
	}
}

func (r *Recorder) OnDispatch(_ context.Context, request kind.Kind, d time.Duration, err error) {
	r.mu.Lock()
	r.dispatches = append(r.dispatches, Dispatch{Request: request, Duration: d, Err: err})
	r.mu.Unlock()
}

func (r *Recorder) OnPublish(_ context.Context, notification kind.Kind, handlers int, d time.Duration, err error) {
	r.mu.Lock()
	r.publishes = append(r.publishes, Publish{Notification: notification, Handlers: handlers, Duration: d, Err: err})
	r.mu.Unlock()
}

func (r *Recorder) OnFailure(_ context.Context, dispatched, failure kind.Kind, handled bool) {
	r.mu.Lock()
	r.failures = append(r.failures, Failure{Dispatched: dispatched, Failure: failure, Handled: handled})
	r.mu.Unlock()
}

// Dispatches returns a copy of the recorded dispatches.
func (r *Recorder) Dispatches() []Dispatch {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.dispatches)
}

// Publishes returns a copy of the recorded publishes.
func (r *Recorder) Publishes() []Publish {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.publishes)
}

// Failures returns a copy of the recorded failures.
func (r *Recorder) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.failures)
}

// Reset drops every recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.dispatches, r.publishes, r.failures = nil, nil, nil
	r.mu.Unlock()
}
