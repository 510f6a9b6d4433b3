// Package global holds a lazily constructed, process-wide Mediator for
// applications that prefer a single shared instance to passing one around.
package global

import (
	"context"
	"log/slog"
	"sync"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/mediator"
)

var instance = sync.OnceValue(func() *mediator.Mediator {
	return mediator.New(slog.Default())
})

// Mediator returns the process-wide mediator, creating it on first use.
func Mediator() *mediator.Mediator { return instance() }

// Dispatch sends req through the process-wide mediator.
func Dispatch(ctx context.Context, req cmed.Request) (any, error) {
	return Mediator().Dispatch(ctx, req)
}

// Publish broadcasts n through the process-wide mediator.
func Publish(ctx context.Context, n cmed.Notification) error {
	return Mediator().Publish(ctx, n)
}

// Reset clears every registration on the process-wide mediator. Intended for
// test isolation.
func Reset() { Mediator().Reset() }
