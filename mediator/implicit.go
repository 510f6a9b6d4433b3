package mediator

import (
	"fmt"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
)

// ImplicitHandlerKind names the handler kind HandleWith declares for request.
func ImplicitHandlerKind(request kind.Kind) kind.Kind { return request + "#handler" }

// HandleWith binds fn as the handler for request without the caller declaring
// a handler kind. A request can carry one implicit handler at a time.
func (m *Mediator) HandleWith(request kind.Kind, fn cmed.RequestHandlerFunc) error {
	if request == "" || fn == nil {
		return fmt.Errorf("handle with: request kind and func are required: %w", berr.ErrInvalidArgument)
	}

	m.implicitMu.Lock()
	defer m.implicitMu.Unlock()

	if _, ok := m.implicit[request]; ok {
		return fmt.Errorf("handle with %s: %w", request, berr.ErrImplicitHandlerExists)
	}

	if !m.graph.IsStrictDescendant(request, cmed.RequestKind) {
		return fmt.Errorf("handle with %s: does not descend from %s: %w", request, cmed.RequestKind, berr.ErrTypeConstraint)
	}

	if existing, ok := m.requests.Lookup(request); ok {
		return fmt.Errorf("handle with %s (already handled by %s): %w", request, existing, berr.ErrHandlerExists)
	}

	hk := ImplicitHandlerKind(request)
	if err := m.graph.Declare(hk, cmed.RequestHandlerKind); err != nil {
		return fmt.Errorf("handle with %s: %w", request, err)
	}

	f := cmed.Singleton[cmed.RequestHandler](hk, fn)
	if err := m.RegisterRequestHandler(f, request); err != nil {
		return err
	}

	m.implicit[request] = f

	return nil
}

// ImplicitHandler returns a handler instance bound by HandleWith.
func (m *Mediator) ImplicitHandler(request kind.Kind) (cmed.RequestHandler, error) {
	m.implicitMu.Lock()
	f, ok := m.implicit[request]
	m.implicitMu.Unlock()

	if !ok {
		return nil, fmt.Errorf("implicit handler %s: %w", request, berr.ErrImplicitHandlerNotFound)
	}

	return f.New(), nil
}

// UndefineImplicitHandler drops the implicit handler of request together with
// its registration. It reports whether one existed.
func (m *Mediator) UndefineImplicitHandler(request kind.Kind) bool {
	m.implicitMu.Lock()
	defer m.implicitMu.Unlock()

	f, ok := m.implicit[request]
	if !ok {
		return false
	}

	delete(m.implicit, request)
	m.requests.Remove(request, f.Kind)
	m.logger.Debug("implicit handler removed", "request", request)

	return true
}
