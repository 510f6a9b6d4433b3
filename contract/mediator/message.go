package mediator

import "github.com/next-trace/scg-mediator/kind"

// Request is a value expecting exactly one handler and one return value.
// Its kind must be declared under RequestKind.
type Request interface{ Kind() kind.Kind }

// Notification is a value broadcast to zero or more independent handlers.
// Its kind must be declared under NotificationKind.
type Notification interface{ Kind() kind.Kind }

// Roots of the kind hierarchy. Dispatchable kinds descend from RequestKind or
// NotificationKind, failures from ErrorKind, and handler kinds from the
// capability root matching the role they are registered for.
const (
	RequestKind      kind.Kind = "mediator.Request"
	NotificationKind kind.Kind = "mediator.Notification"
	ErrorKind        kind.Kind = "mediator.Error"

	RequestHandlerKind      kind.Kind = "mediator.RequestHandler"
	NotificationHandlerKind kind.Kind = "mediator.NotificationHandler"
	PrerequestBehaviorKind  kind.Kind = "mediator.PrerequestBehavior"
	PostrequestBehaviorKind kind.Kind = "mediator.PostrequestBehavior"
	ErrorHandlerKind        kind.Kind = "mediator.ErrorHandler"
)

// Roots returns every root kind in a stable order.
func Roots() []kind.Kind {
	return []kind.Kind{
		RequestKind,
		NotificationKind,
		ErrorKind,
		RequestHandlerKind,
		NotificationHandlerKind,
		PrerequestBehaviorKind,
		PostrequestBehaviorKind,
		ErrorHandlerKind,
	}
}
