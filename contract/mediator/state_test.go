package mediator_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
)

type ping struct{}

func (ping) Kind() kind.Kind { return "Ping" }

func TestErrorState_Lifecycle(t *testing.T) {
	s := cmed.NewErrorState()

	assert.False(t, s.Handled())
	assert.Nil(t, s.Result())
	assert.NotEqual(t, uuid.Nil, s.ID())

	s.SetHandled("recovered")

	assert.True(t, s.Handled())
	assert.Equal(t, "recovered", s.Result())

	// handled with no result still counts as handled
	s2 := cmed.NewErrorState()
	s2.SetHandled(nil)
	assert.True(t, s2.Handled())
	assert.NotEqual(t, s.ID(), s2.ID())
}

func TestFuncAdapters(t *testing.T) {
	ctx := context.Background()

	var rh cmed.RequestHandler = cmed.RequestHandlerFunc(func(ctx context.Context, req cmed.Request) (any, error) {
		return req.Kind().String(), nil
	})
	res, err := rh.Handle(ctx, ping{})
	assert.NoError(t, err)
	assert.Equal(t, "Ping", res)

	var seen []string

	var pre cmed.PrerequestBehavior = cmed.PrerequestFunc(func(ctx context.Context, req cmed.Request) error {
		seen = append(seen, "pre")
		return nil
	})
	var post cmed.PostrequestBehavior = cmed.PostrequestFunc(func(ctx context.Context, req cmed.Request, result any) error {
		seen = append(seen, "post:"+result.(string))
		return nil
	})
	var nh cmed.NotificationHandler = cmed.NotificationHandlerFunc(func(ctx context.Context, n cmed.Notification) error {
		seen = append(seen, "notif")
		return nil
	})
	var eh cmed.ErrorHandler = cmed.ErrorHandlerFunc(func(ctx context.Context, d kind.Kinded, err error, s *cmed.ErrorState) error {
		s.SetHandled("x")
		return nil
	})

	assert.NoError(t, pre.Handle(ctx, ping{}))
	assert.NoError(t, post.Handle(ctx, ping{}, "pong"))
	assert.NoError(t, nh.Handle(ctx, ping{}))

	state := cmed.NewErrorState()
	assert.NoError(t, eh.Handle(ctx, ping{}, assert.AnError, state))
	assert.True(t, state.Handled())
	assert.Equal(t, []string{"pre", "post:pong", "notif"}, seen)
}

func TestFactories(t *testing.T) {
	calls := 0
	f := cmed.FactoryOf[cmed.RequestHandler]("H", func() cmed.RequestHandler {
		calls++
		return cmed.RequestHandlerFunc(func(ctx context.Context, req cmed.Request) (any, error) { return nil, nil })
	})

	_ = f.New()
	_ = f.New()
	assert.Equal(t, 2, calls)
	assert.Equal(t, kind.Kind("H"), f.Kind)

	h := cmed.RequestHandlerFunc(func(ctx context.Context, req cmed.Request) (any, error) { return 1, nil })
	s := cmed.Singleton[cmed.RequestHandler]("S", h)
	got, _ := s.New().Handle(context.Background(), ping{})
	assert.Equal(t, 1, got)
	assert.Len(t, cmed.Roots(), 8)
}
