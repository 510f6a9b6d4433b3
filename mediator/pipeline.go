package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"time"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
)

// Dispatch sends req through its pipeline: every prerequest behavior, the
// single request handler, then every postrequest behavior. Behaviors run most
// recently registered first. Each handler is constructed fresh from its factory.
//
// A failure in any step stops the pipeline and is handed to the error handlers
// resolved for it. If one of them marks the failure handled, its result is
// returned; otherwise the result computed before the failing step is returned.
// Either way the error is nil. Dispatch only returns an error when req is nil,
// when no handler exists for its kind, or when an error handler itself fails.
func (m *Mediator) Dispatch(ctx context.Context, req cmed.Request) (any, error) {
	if isNil(req) {
		return nil, fmt.Errorf("dispatch: request cannot be nil: %w", berr.ErrInvalidArgument)
	}

	k := req.Kind()
	start := time.Now()

	res, err := m.dispatch(ctx, req, k)
	m.hooks.dispatched(ctx, k, time.Since(start), err)

	return res, err
}

func (m *Mediator) dispatch(ctx context.Context, req cmed.Request, k kind.Kind) (any, error) {
	handler, ok := m.requests.Resolve(k)
	if !ok {
		return nil, fmt.Errorf("dispatch %s: %w", k, berr.ErrHandlerNotFound)
	}

	pre := m.pre.Collect(k)
	slices.Reverse(pre)

	post := m.post.Collect(k)
	slices.Reverse(post)

	m.logger.DebugContext(ctx, "dispatching request",
		"request", k, "handler", handler.Kind, "pre", len(pre), "post", len(post))

	var result any

	err := runPipeline(ctx, req, pre, handler, post, &result)
	if err != nil {
		return m.resolveFailure(ctx, req, err, result)
	}

	return result, nil
}

// runPipeline stores the handler's result in *result as soon as it is known so
// that a failing postrequest behavior leaves it in place.
func runPipeline(
	ctx context.Context,
	req cmed.Request,
	pre []preFactory,
	handler requestFactory,
	post []postFactory,
	result *any,
) error {
	for _, f := range pre {
		if err := invoke(f.Kind, func() error { return f.New().Handle(ctx, req) }); err != nil {
			return err
		}
	}

	err := invoke(handler.Kind, func() error {
		res, err := handler.New().Handle(ctx, req)
		if err != nil {
			return err
		}

		*result = res

		return nil
	})
	if err != nil {
		return err
	}

	for _, f := range post {
		if err := invoke(f.Kind, func() error { return f.New().Handle(ctx, req, *result) }); err != nil {
			return err
		}
	}

	return nil
}

// Ask dispatches req and asserts the result to R. An absent result yields the
// zero R.
func Ask[R any](ctx context.Context, m *Mediator, req cmed.Request) (R, error) {
	var zero R

	res, err := m.Dispatch(ctx, req)
	if err != nil {
		return zero, err
	}

	if res == nil {
		return zero, nil
	}

	r, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("ask %s: got %T, want %T: %w", req.Kind(), res, zero, berr.ErrResultTypeMismatch)
	}

	return r, nil
}

// resolveFailure runs the error handlers resolved for cause against a fresh
// ErrorState, stopping at the first one that marks it handled. An error
// returned by an error handler aborts resolution and is returned wrapped in
// ErrErrorHandlerFailed.
func (m *Mediator) resolveFailure(ctx context.Context, dispatched kind.Kinded, cause error, fallback any) (any, error) {
	dk := dispatched.Kind()
	fk := m.failureKind(cause)
	candidates := m.errs.Resolve(m.namespace(dk), fk, dk)
	state := cmed.NewErrorState()

	for _, f := range candidates {
		if err := f.New().Handle(ctx, dispatched, cause, state); err != nil {
			m.logger.ErrorContext(ctx, "error handler failed",
				"incident", state.ID(), "error_handler", f.Kind, "dispatched", dk, "failure", fk, "error", err)

			return nil, fmt.Errorf("%s handling %s for %s: %w: %w", f.Kind, fk, dk, berr.ErrErrorHandlerFailed, err)
		}

		if state.Handled() {
			break
		}
	}

	m.hooks.failed(ctx, dk, fk, state.Handled())

	if state.Handled() {
		m.logger.DebugContext(ctx, "failure handled",
			"incident", state.ID(), "dispatched", dk, "failure", fk)

		return state.Result(), nil
	}

	m.logger.WarnContext(ctx, "failure not handled",
		"incident", state.ID(), "dispatched", dk, "failure", fk, "candidates", len(candidates),
		"error", fmt.Errorf("%w: %w", berr.ErrUnresolved, cause))

	return fallback, nil
}

// failureKind returns the kind of the first Kinded error in err's chain when it
// is declared under ErrorKind, and ErrorKind otherwise. A nil pointer in the
// chain is not asked for its kind.
func (m *Mediator) failureKind(err error) kind.Kind {
	var k kind.Kinded
	if errors.As(err, &k) && !isNil(k) {
		if fk := k.Kind(); m.graph.IsDescendantOrEqual(fk, cmed.ErrorKind) {
			return fk
		}
	}

	return cmed.ErrorKind
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
