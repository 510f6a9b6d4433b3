package mediator

import (
	"context"
	"fmt"
	"time"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
)

// Publish delivers n to every notification handler registered for its kind or
// one of its ancestors, oldest registration first. Having no handler is not an
// error. A failing handler is routed to the error handlers and the remaining
// handlers still run; Publish only returns an error when n is nil or an error
// handler itself fails.
func (m *Mediator) Publish(ctx context.Context, n cmed.Notification) error {
	if isNil(n) {
		return fmt.Errorf("publish: notification cannot be nil: %w", berr.ErrInvalidArgument)
	}

	k := n.Kind()
	start := time.Now()

	handlers := m.notifications.Collect(k)
	err := m.broadcast(ctx, n, handlers)
	m.hooks.published(ctx, k, len(handlers), time.Since(start), err)

	return err
}

func (m *Mediator) broadcast(ctx context.Context, n cmed.Notification, handlers []notificationFactory) error {
	if len(handlers) == 0 {
		m.logger.DebugContext(ctx, "no notification handlers", "notification", n.Kind())
		return nil
	}

	for _, f := range handlers {
		err := invoke(f.Kind, func() error { return f.New().Handle(ctx, n) })
		if err == nil {
			continue
		}

		if _, ferr := m.resolveFailure(ctx, n, err, nil); ferr != nil {
			return ferr
		}
	}

	return nil
}
