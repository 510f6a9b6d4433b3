package mediator

import (
	"context"

	"github.com/next-trace/scg-mediator/kind"
)

// RequestHandler performs the work for a request. Whatever it returns is handed
// back to the sender.
type RequestHandler interface {
	Handle(ctx context.Context, req Request) (any, error)
}

// NotificationHandler receives a published notification.
type NotificationHandler interface {
	Handle(ctx context.Context, n Notification) error
}

// PrerequestBehavior runs before the request handler.
type PrerequestBehavior interface {
	Handle(ctx context.Context, req Request) error
}

// PostrequestBehavior runs after the request handler and sees its result.
type PostrequestBehavior interface {
	Handle(ctx context.Context, req Request, result any) error
}

// ErrorHandler handles a failure raised while dispatching a request or publishing
// a notification. Call state.SetHandled to stop further error handlers and, for
// requests, to supply the value returned to the sender. A non-nil return is fatal
// and surfaces to the caller of Dispatch or Publish.
type ErrorHandler interface {
	Handle(ctx context.Context, dispatched kind.Kinded, err error, state *ErrorState) error
}

// RequestHandlerFunc is a function adapter for RequestHandler.
type RequestHandlerFunc func(ctx context.Context, req Request) (any, error)

// Handle implements RequestHandler.
func (f RequestHandlerFunc) Handle(ctx context.Context, req Request) (any, error) { return f(ctx, req) }

// NotificationHandlerFunc is a function adapter for NotificationHandler.
type NotificationHandlerFunc func(ctx context.Context, n Notification) error

// Handle implements NotificationHandler.
func (f NotificationHandlerFunc) Handle(ctx context.Context, n Notification) error { return f(ctx, n) }

// PrerequestFunc is a function adapter for PrerequestBehavior.
type PrerequestFunc func(ctx context.Context, req Request) error

// Handle implements PrerequestBehavior.
func (f PrerequestFunc) Handle(ctx context.Context, req Request) error { return f(ctx, req) }

// PostrequestFunc is a function adapter for PostrequestBehavior.
type PostrequestFunc func(ctx context.Context, req Request, result any) error

// Handle implements PostrequestBehavior.
func (f PostrequestFunc) Handle(ctx context.Context, req Request, result any) error {
	return f(ctx, req, result)
}

// ErrorHandlerFunc is a function adapter for ErrorHandler.
type ErrorHandlerFunc func(ctx context.Context, dispatched kind.Kinded, err error, state *ErrorState) error

// Handle implements ErrorHandler.
func (f ErrorHandlerFunc) Handle(ctx context.Context, dispatched kind.Kinded, err error, state *ErrorState) error {
	return f(ctx, dispatched, err, state)
}
