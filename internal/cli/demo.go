package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	cmed "github.com/next-trace/scg-mediator/contract/mediator"
	"github.com/next-trace/scg-mediator/kind"
	"github.com/next-trace/scg-mediator/mediator"
)

// --- Kinds ---

const (
	GreetKind            kind.Kind = "demo.Greet"
	CreateUserKind       kind.Kind = "demo.CreateUser"
	UserCreatedKind      kind.Kind = "demo.UserCreated"
	ValidationFailedKind kind.Kind = "demo.ValidationFailed"

	greetHandlerKind      kind.Kind = "demo.GreetHandler"
	createUserHandlerKind kind.Kind = "demo.CreateUserHandler"
	logRequestKind        kind.Kind = "demo.LogRequest"
	auditKind             kind.Kind = "demo.Audit"
	sendWelcomeKind       kind.Kind = "demo.SendWelcome"
	syncCRMKind           kind.Kind = "demo.SyncCRM"
	rejectInvalidKind     kind.Kind = "demo.RejectInvalid"
	logFailureKind        kind.Kind = "demo.LogFailure"
)

var demoKinds = [][2]kind.Kind{
	{GreetKind, cmed.RequestKind},
	{CreateUserKind, cmed.RequestKind},
	{UserCreatedKind, cmed.NotificationKind},
	{ValidationFailedKind, cmed.ErrorKind},
	{greetHandlerKind, cmed.RequestHandlerKind},
	{createUserHandlerKind, cmed.RequestHandlerKind},
	{logRequestKind, cmed.PrerequestBehaviorKind},
	{auditKind, cmed.PostrequestBehaviorKind},
	{sendWelcomeKind, cmed.NotificationHandlerKind},
	{syncCRMKind, cmed.NotificationHandlerKind},
	{rejectInvalidKind, cmed.ErrorHandlerKind},
	{logFailureKind, cmed.ErrorHandlerKind},
}

// --- Requests & Notifications ---

type Greet struct{ Name string }

func (Greet) Kind() kind.Kind { return GreetKind }

type CreateUser struct{ Name string }

func (CreateUser) Kind() kind.Kind { return CreateUserKind }

type User struct{ ID, Name string }

type UserCreated struct{ User User }

func (UserCreated) Kind() kind.Kind { return UserCreatedKind }

// ValidationError is raised by CreateUser handling for bad input.
type ValidationError struct{ Field string }

func (e ValidationError) Error() string { return "invalid " + e.Field }
func (ValidationError) Kind() kind.Kind { return ValidationFailedKind }

var errCRMUnavailable = errors.New("crm unavailable")

// --- Handlers ---

type greetHandler struct{}

func (greetHandler) Handle(_ context.Context, req cmed.Request) (any, error) {
	return fmt.Sprintf("Hello, %s!", req.(Greet).Name), nil
}

type createUserHandler struct{}

func (createUserHandler) Handle(_ context.Context, req cmed.Request) (any, error) {
	c := req.(CreateUser)
	if c.Name == "" {
		return nil, ValidationError{Field: "name"}
	}

	return User{ID: uuid.NewString(), Name: c.Name}, nil
}

// registerDemo declares the demo kinds on m and registers every demo handler.
func registerDemo(m *mediator.Mediator, logger *slog.Logger) error {
	for _, link := range demoKinds {
		if err := m.Declare(link[0], link[1]); err != nil {
			return fmt.Errorf("declare %s: %w", link[0], err)
		}
	}

	logRequest := cmed.PrerequestFunc(func(ctx context.Context, req cmed.Request) error {
		logger.InfoContext(ctx, "request", "kind", req.Kind())
		return nil
	})

	audit := cmed.PostrequestFunc(func(ctx context.Context, req cmed.Request, result any) error {
		logger.InfoContext(ctx, "audit", "kind", req.Kind(), "result", result)
		return nil
	})

	sendWelcome := cmed.NotificationHandlerFunc(func(ctx context.Context, n cmed.Notification) error {
		logger.InfoContext(ctx, "welcome email sent", "user", n.(UserCreated).User.Name)
		return nil
	})

	syncCRM := cmed.NotificationHandlerFunc(func(context.Context, cmed.Notification) error {
		return errCRMUnavailable
	})

	rejectInvalid := cmed.ErrorHandlerFunc(func(_ context.Context, _ kind.Kinded, err error, state *cmed.ErrorState) error {
		state.SetHandled("rejected: " + err.Error())
		return nil
	})

	logFailure := cmed.ErrorHandlerFunc(func(ctx context.Context, dispatched kind.Kinded, err error, state *cmed.ErrorState) error {
		logger.WarnContext(ctx, "listener failed", "incident", state.ID(), "dispatched", dispatched.Kind(), "error", err)
		return nil
	})

	return errors.Join(
		m.RegisterRequestHandler(cmed.Singleton[cmed.RequestHandler](greetHandlerKind, greetHandler{}), GreetKind),
		m.RegisterRequestHandler(cmed.FactoryOf(createUserHandlerKind, func() cmed.RequestHandler { return createUserHandler{} }), CreateUserKind),
		m.RegisterPrerequestBehavior(cmed.Singleton[cmed.PrerequestBehavior](logRequestKind, logRequest), cmed.RequestKind),
		m.RegisterPostrequestBehavior(cmed.Singleton[cmed.PostrequestBehavior](auditKind, audit), cmed.RequestKind),
		m.RegisterNotificationHandler(cmed.Singleton[cmed.NotificationHandler](sendWelcomeKind, sendWelcome), UserCreatedKind),
		m.RegisterNotificationHandler(cmed.Singleton[cmed.NotificationHandler](syncCRMKind, syncCRM), UserCreatedKind),
		m.RegisterErrorHandler(cmed.Singleton[cmed.ErrorHandler](rejectInvalidKind, rejectInvalid), ValidationFailedKind, CreateUserKind),
		m.RegisterErrorHandler(cmed.Singleton[cmed.ErrorHandler](logFailureKind, logFailure), cmed.ErrorKind, cmed.NotificationKind),
	)
}
