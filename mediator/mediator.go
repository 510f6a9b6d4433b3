package mediator

import (
	"fmt"
	"log/slog"
	"sync"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
	"github.com/next-trace/scg-mediator/registry"
)

type (
	requestFactory      = cmed.Factory[cmed.RequestHandler]
	notificationFactory = cmed.Factory[cmed.NotificationHandler]
	preFactory          = cmed.Factory[cmed.PrerequestBehavior]
	postFactory         = cmed.Factory[cmed.PostrequestBehavior]
	errorFactory        = cmed.Factory[cmed.ErrorHandler]
)

// Mediator routes requests to their single handler through the pre/post
// behavior pipeline, broadcasts notifications, and sends handler failures to
// the error handlers registered for them.
//
// Mediator is concurrency-safe and contains no global state.
type Mediator struct {
	graph  *kind.Graph
	logger *slog.Logger
	hooks  hooks

	requests      *registry.Single[requestFactory]
	notifications *registry.Multi[notificationFactory]
	pre           *registry.Multi[preFactory]
	post          *registry.Multi[postFactory]
	errs          *registry.Errors[errorFactory]

	implicitMu sync.Mutex
	implicit   map[kind.Kind]requestFactory
}

// NewGraph returns a kind graph holding every root of the mediator contract
// plus PanicKind.
func NewGraph() *kind.Graph {
	g := kind.NewGraph(cmed.Roots()...)
	_ = g.Declare(PanicKind, cmed.ErrorKind)

	return g
}

// New constructs an empty Mediator. A nil logger discards all output.
func New(logger *slog.Logger, opts ...Option) *Mediator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &Mediator{logger: logger}

	for _, opt := range opts {
		opt(m)
	}

	if m.graph == nil {
		m.graph = NewGraph()
	}

	m.requests = registry.NewSingle[requestFactory](m.graph)
	m.notifications = registry.NewMulti[notificationFactory](m.graph)
	m.pre = registry.NewMulti[preFactory](m.graph)
	m.post = registry.NewMulti[postFactory](m.graph)
	m.errs = registry.NewErrors[errorFactory](m.graph)
	m.implicit = make(map[kind.Kind]requestFactory)

	return m
}

// Graph returns the kind graph used for resolution.
func (m *Mediator) Graph() *kind.Graph { return m.graph }

// Declare adds k under parent to the mediator's kind graph.
func (m *Mediator) Declare(k, parent kind.Kind) error { return m.graph.Declare(k, parent) }

// RegisterRequestHandler registers f as the handler for requests of kind
// request and, unless overridden lower down, of every kind beneath it. The
// request kind must be strictly below RequestKind.
func (m *Mediator) RegisterRequestHandler(f cmed.Factory[cmed.RequestHandler], request kind.Kind) error {
	const op = "register request handler"

	if err := validate(m.graph, op, f, cmed.RequestHandlerKind, target{request, cmed.RequestKind, false}); err != nil {
		return err
	}

	if err := m.requests.Register(request, f.Kind, f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.logger.Debug("request handler registered", "handler", f.Kind, "request", request)

	return nil
}

// RegisterNotificationHandler adds f to the handlers of notifications of kind
// notification and every kind beneath it. NotificationKind itself is allowed.
func (m *Mediator) RegisterNotificationHandler(f cmed.Factory[cmed.NotificationHandler], notification kind.Kind) error {
	const op = "register notification handler"

	if err := validate(m.graph, op, f, cmed.NotificationHandlerKind, target{notification, cmed.NotificationKind, true}); err != nil {
		return err
	}

	m.notifications.Register(notification, f.Kind, f)
	m.logger.Debug("notification handler registered", "handler", f.Kind, "notification", notification)

	return nil
}

// RegisterPrerequestBehavior adds f to the behaviors run before the handler of
// requests of kind request. RequestKind itself is allowed.
func (m *Mediator) RegisterPrerequestBehavior(f cmed.Factory[cmed.PrerequestBehavior], request kind.Kind) error {
	const op = "register prerequest behavior"

	if err := validate(m.graph, op, f, cmed.PrerequestBehaviorKind, target{request, cmed.RequestKind, true}); err != nil {
		return err
	}

	m.pre.Register(request, f.Kind, f)
	m.logger.Debug("prerequest behavior registered", "behavior", f.Kind, "request", request)

	return nil
}

// RegisterPostrequestBehavior adds f to the behaviors run after the handler of
// requests of kind request. RequestKind itself is allowed.
func (m *Mediator) RegisterPostrequestBehavior(f cmed.Factory[cmed.PostrequestBehavior], request kind.Kind) error {
	const op = "register postrequest behavior"

	if err := validate(m.graph, op, f, cmed.PostrequestBehaviorKind, target{request, cmed.RequestKind, true}); err != nil {
		return err
	}

	m.post.Register(request, f.Kind, f)
	m.logger.Debug("postrequest behavior registered", "behavior", f.Kind, "request", request)

	return nil
}

// RegisterErrorHandler adds f to the handlers of failures of kind failure
// raised while handling a request or notification of kind dispatched. Both
// kinds may be their root, which makes f a catch-all along that axis.
func (m *Mediator) RegisterErrorHandler(f cmed.Factory[cmed.ErrorHandler], failure, dispatched kind.Kind) error {
	const op = "register error handler"

	ns := m.namespace(dispatched)

	err := validate(m.graph, op, f, cmed.ErrorHandlerKind,
		target{failure, cmed.ErrorKind, true},
		target{dispatched, ns, true},
	)
	if err != nil {
		return err
	}

	m.errs.Register(ns, failure, dispatched, f.Kind, f)
	m.logger.Debug("error handler registered", "handler", f.Kind, "failure", failure, "dispatched", dispatched)

	return nil
}

// Reset clears every registry and implicit handler, leaving the mediator as if
// freshly constructed. The kind graph is kept.
func (m *Mediator) Reset() {
	m.implicitMu.Lock()
	defer m.implicitMu.Unlock()

	m.requests.Reset()
	m.notifications.Reset()
	m.pre.Reset()
	m.post.Reset()
	m.errs.Reset()
	m.implicit = make(map[kind.Kind]requestFactory)

	m.logger.Debug("mediator reset")
}

// Counts reports how many registrations each registry holds.
type Counts struct {
	RequestHandlers      int
	NotificationHandlers int
	PrerequestBehaviors  int
	PostrequestBehaviors int
	ErrorHandlers        int
}

// Counts returns the current registration counts.
func (m *Mediator) Counts() Counts {
	return Counts{
		RequestHandlers:      m.requests.Len(),
		NotificationHandlers: m.notifications.Len(),
		PrerequestBehaviors:  m.pre.Len(),
		PostrequestBehaviors: m.post.Len(),
		ErrorHandlers:        m.errs.Len(),
	}
}

// namespace picks the root whose error handlers apply to a dispatched kind.
func (m *Mediator) namespace(dispatched kind.Kind) kind.Kind {
	if m.graph.IsDescendantOrEqual(dispatched, cmed.NotificationKind) {
		return cmed.NotificationKind
	}

	return cmed.RequestKind
}

type target struct {
	kind      kind.Kind
	root      kind.Kind
	allowRoot bool
}

// validate checks presence of every argument first, then kind constraints.
func validate[H any](g *kind.Graph, op string, f cmed.Factory[H], capability kind.Kind, targets ...target) error {
	if f.Kind == "" || f.New == nil {
		return fmt.Errorf("%s: factory kind and constructor are required: %w", op, berr.ErrInvalidArgument)
	}

	for _, t := range targets {
		if t.kind == "" {
			return fmt.Errorf("%s %s: target kind is required: %w", op, f.Kind, berr.ErrInvalidArgument)
		}
	}

	if !g.IsStrictDescendant(f.Kind, capability) {
		return fmt.Errorf("%s: %s does not descend from %s: %w", op, f.Kind, capability, berr.ErrTypeConstraint)
	}

	for _, t := range targets {
		if t.allowRoot && t.kind == t.root {
			continue
		}

		if !g.IsStrictDescendant(t.kind, t.root) {
			return fmt.Errorf("%s %s: %s does not descend from %s: %w", op, f.Kind, t.kind, t.root, berr.ErrTypeConstraint)
		}
	}

	return nil
}
