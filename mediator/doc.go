/*
Package mediator implements an in-process mediator.

Requests, notifications, failures and handlers are identified by kinds declared
in a kind.Graph. Handlers are registered for a kind and apply to every kind
declared beneath it:

	m := mediator.New(slog.Default())
	_ = m.Declare("app.GetUser", cmed.RequestKind)
	_ = m.Declare("app.GetUserHandler", cmed.RequestHandlerKind)
	_ = m.RegisterRequestHandler(cmed.Singleton[cmed.RequestHandler]("app.GetUserHandler", h), "app.GetUser")

	user, err := mediator.Ask[User](ctx, m, GetUser{ID: 7})

Dispatch runs prerequest behaviors, the request handler and postrequest
behaviors. Publish fans a notification out to all of its handlers. Failures
raised by any handler are matched against error handlers by failure kind and by
dispatched kind, most specific first.
*/
package mediator
