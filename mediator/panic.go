package mediator

import (
	"fmt"
	"runtime/debug"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/kind"
)

// PanicKind is the failure kind of a recovered handler panic. It is declared
// under ErrorKind in every graph built by NewGraph, so error handlers can be
// registered for it like any other failure.
const PanicKind kind.Kind = "mediator.Panic"

// PanicError wraps a value recovered from a panicking handler or behavior.
type PanicError struct {
	Handler kind.Kind
	Value   any
	Stack   string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler %s panicked: %v", e.Handler, e.Value)
}

// Kind reports PanicKind.
func (e *PanicError) Kind() kind.Kind { return PanicKind }

// Is matches ErrHandlerPanic.
func (e *PanicError) Is(target error) bool { return target == berr.ErrHandlerPanic }

// Unwrap returns the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// invoke runs fn and turns a panic into a *PanicError attributed to handler.
func invoke(handler kind.Kind, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Handler: handler, Value: r, Stack: string(debug.Stack())}
		}
	}()

	return fn()
}
