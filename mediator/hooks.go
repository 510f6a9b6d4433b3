package mediator

import (
	"context"
	"time"

	"github.com/next-trace/scg-mediator/kind"
)

// OnDispatchFunc is called after every Dispatch with the request kind, the time
// spent and the error returned to the caller (nil when a failure was routed to
// error handlers).
type OnDispatchFunc func(ctx context.Context, request kind.Kind, d time.Duration, err error)

// OnPublishFunc is called after every Publish with the number of handlers that
// were resolved for the notification.
type OnPublishFunc func(ctx context.Context, notification kind.Kind, handlers int, d time.Duration, err error)

// OnFailureFunc is called once a handler failure has been run through the error
// handlers. handled reports whether one of them called SetHandled.
type OnFailureFunc func(ctx context.Context, dispatched, failure kind.Kind, handled bool)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch []OnDispatchFunc
	onPublish  []OnPublishFunc
	onFailure  []OnFailureFunc
}

func (h hooks) dispatched(ctx context.Context, request kind.Kind, d time.Duration, err error) {
	for _, fn := range h.onDispatch {
		fn(ctx, request, d, err)
	}
}

func (h hooks) published(ctx context.Context, notification kind.Kind, handlers int, d time.Duration, err error) {
	for _, fn := range h.onPublish {
		fn(ctx, notification, handlers, d, err)
	}
}

func (h hooks) failed(ctx context.Context, dispatched, failure kind.Kind, handled bool) {
	for _, fn := range h.onFailure {
		fn(ctx, dispatched, failure, handled)
	}
}

// Option configures a Mediator.
type Option func(*Mediator)

// WithGraph makes the mediator resolve kinds against g instead of a private
// graph. g should come from NewGraph so that every root is present.
func WithGraph(g *kind.Graph) Option {
	return func(m *Mediator) { m.graph = g }
}

// WithOnDispatch adds a hook called after every Dispatch.
// Multiple hooks are called in order.
//
// Example:
//
//	mediator.WithOnDispatch(func(ctx context.Context, k kind.Kind, d time.Duration, err error) {
//	    metrics.Timing("mediator.dispatch", d, "request:"+k.String())
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(m *Mediator) { m.hooks.onDispatch = append(m.hooks.onDispatch, fn) }
}

// WithOnPublish adds a hook called after every Publish.
// Multiple hooks are called in order.
func WithOnPublish(fn OnPublishFunc) Option {
	return func(m *Mediator) { m.hooks.onPublish = append(m.hooks.onPublish, fn) }
}

// WithOnFailure adds a hook called after a handler failure went through error
// resolution. Multiple hooks are called in order.
func WithOnFailure(fn OnFailureFunc) Option {
	return func(m *Mediator) { m.hooks.onFailure = append(m.hooks.onFailure, fn) }
}
