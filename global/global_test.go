package global

import (
	"context"
	"errors"
	"testing"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
)

type testMsg struct{ k kind.Kind }

func (m testMsg) Kind() kind.Kind { return m.k }

func TestGlobal_BasicFlow(t *testing.T) {
	t.Cleanup(Reset)

	m := Mediator()
	if m != Mediator() {
		t.Fatal("expected the same mediator on every call")
	}

	for _, link := range [][2]kind.Kind{
		{"global.Ping", cmed.RequestKind},
		{"global.PingHandler", cmed.RequestHandlerKind},
		{"global.Joined", cmed.NotificationKind},
		{"global.Greeter", cmed.NotificationHandlerKind},
	} {
		if err := m.Declare(link[0], link[1]); err != nil {
			t.Fatalf("declare %s: %v", link[0], err)
		}
	}

	// Register and dispatch a request
	if err := m.RegisterRequestHandler(cmed.Singleton[cmed.RequestHandler]("global.PingHandler",
		cmed.RequestHandlerFunc(func(context.Context, cmed.Request) (any, error) { return "pong", nil })),
		"global.Ping"); err != nil {
		t.Fatalf("register handler: %v", err)
	}

	res, err := Dispatch(t.Context(), testMsg{"global.Ping"})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if s, ok := res.(string); !ok || s != "pong" {
		t.Fatalf("unexpected result: %#v", res)
	}

	// Register and publish a notification
	greeted := 0
	if err := m.RegisterNotificationHandler(cmed.Singleton[cmed.NotificationHandler]("global.Greeter",
		cmed.NotificationHandlerFunc(func(context.Context, cmed.Notification) error {
			greeted++
			return nil
		})), "global.Joined"); err != nil {
		t.Fatalf("register notification handler: %v", err)
	}

	if err := Publish(t.Context(), testMsg{"global.Joined"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if greeted != 1 {
		t.Fatalf("expected greeted=1 got %d", greeted)
	}

	// Reset clears registrations but keeps the instance
	Reset()

	if Mediator() != m {
		t.Fatal("reset replaced the mediator")
	}

	if _, err := Dispatch(t.Context(), testMsg{"global.Ping"}); !errors.Is(err, berr.ErrHandlerNotFound) {
		t.Fatalf("expected not found after reset, got %v", err)
	}
}
