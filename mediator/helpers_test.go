package mediator_test

import (
	"context"

	"github.com/stretchr/testify/suite"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
	"github.com/next-trace/scg-mediator/mediator"
)

const (
	ping     kind.Kind = "test.Ping"
	loudPing kind.Kind = "test.LoudPing"
	pong     kind.Kind = "test.Pong"

	event       kind.Kind = "test.Event"
	userCreated kind.Kind = "test.UserCreated"

	testFailure     kind.Kind = "test.TestFailure"
	specificFailure kind.Kind = "test.SpecificFailure"
)

// msg is a request or notification carrying nothing but its kind.
type msg struct{ k kind.Kind }

func (m msg) Kind() kind.Kind { return m.k }

type ptrMsg struct{}

func (*ptrMsg) Kind() kind.Kind { return ping }

// failure is a handler error with a kind of its own.
type failure struct{ k kind.Kind }

func (f failure) Error() string { return "failure " + string(f.k) }
func (f failure) Kind() kind.Kind { return f.k }

// fixture wires a mediator over the test kinds and records handler calls.
type fixture struct {
	suite.Suite
	m     *mediator.Mediator
	trace []string
}

func (s *fixture) setup(opts ...mediator.Option) {
	s.m = mediator.New(nil, opts...)
	s.trace = nil

	for _, link := range [][2]kind.Kind{
		{ping, cmed.RequestKind},
		{loudPing, ping},
		{pong, cmed.RequestKind},
		{event, cmed.NotificationKind},
		{userCreated, event},
		{testFailure, cmed.ErrorKind},
		{specificFailure, testFailure},
	} {
		s.Require().NoError(s.m.Declare(link[0], link[1]))
	}
}

func (s *fixture) record(name string) { s.trace = append(s.trace, name) }

func (s *fixture) declare(id, capability kind.Kind) {
	s.Require().NoError(s.m.Declare(id, capability))
}

func (s *fixture) handle(id, request kind.Kind, fn cmed.RequestHandlerFunc) {
	s.declare(id, cmed.RequestHandlerKind)
	s.Require().NoError(s.m.RegisterRequestHandler(cmed.Singleton[cmed.RequestHandler](id, fn), request))
}

func (s *fixture) returning(id, request kind.Kind, result any) {
	s.handle(id, request, func(context.Context, cmed.Request) (any, error) {
		s.record(string(id))
		return result, nil
	})
}

func (s *fixture) raising(id, request kind.Kind, err error) {
	s.handle(id, request, func(context.Context, cmed.Request) (any, error) {
		s.record(string(id))
		return nil, err
	})
}

func (s *fixture) pre(id, request kind.Kind, err error) {
	s.declare(id, cmed.PrerequestBehaviorKind)
	f := cmed.Singleton[cmed.PrerequestBehavior](id, cmed.PrerequestFunc(func(context.Context, cmed.Request) error {
		s.record(string(id))
		return err
	}))
	s.Require().NoError(s.m.RegisterPrerequestBehavior(f, request))
}

func (s *fixture) post(id, request kind.Kind, err error) {
	s.declare(id, cmed.PostrequestBehaviorKind)
	f := cmed.Singleton[cmed.PostrequestBehavior](id, cmed.PostrequestFunc(func(context.Context, cmed.Request, any) error {
		s.record(string(id))
		return err
	}))
	s.Require().NoError(s.m.RegisterPostrequestBehavior(f, request))
}

func (s *fixture) listen(id, notification kind.Kind, err error) {
	s.declare(id, cmed.NotificationHandlerKind)
	f := cmed.Singleton[cmed.NotificationHandler](id, cmed.NotificationHandlerFunc(func(context.Context, cmed.Notification) error {
		s.record(string(id))
		return err
	}))
	s.Require().NoError(s.m.RegisterNotificationHandler(f, notification))
}

func (s *fixture) onError(id, failureKind, dispatched kind.Kind, fn cmed.ErrorHandlerFunc) {
	s.declare(id, cmed.ErrorHandlerKind)
	s.Require().NoError(s.m.RegisterErrorHandler(cmed.Singleton[cmed.ErrorHandler](id, fn), failureKind, dispatched))
}

// recoverWith returns an error handler that records its id and marks the
// failure handled with result.
func (s *fixture) recoverWith(id string, result any) cmed.ErrorHandlerFunc {
	return func(_ context.Context, _ kind.Kinded, _ error, state *cmed.ErrorState) error {
		s.record(id)
		state.SetHandled(result)

		return nil
	}
}

// observe returns an error handler that records its id and leaves the failure
// unhandled.
func (s *fixture) observe(id string) cmed.ErrorHandlerFunc {
	return func(context.Context, kind.Kinded, error, *cmed.ErrorState) error {
		s.record(id)
		return nil
	}
}
