package errors

// Error codes for the mediator contracts. Keep stable; used across the mediator and its adapters.
const (
	ErrCodeInvalidArgument         = "mediator.invalid_argument"
	ErrCodeTypeConstraint          = "mediator.type_constraint_violation"
	ErrCodeHandlerNotFound         = "mediator.handler_not_found"
	ErrCodeHandlerExists           = "mediator.handler_exists"
	ErrCodeErrorHandlerFailed      = "mediator.error_handler_failed"
	ErrCodeUnresolved              = "mediator.unresolved"
	ErrCodeKindConflict            = "mediator.kind_conflict"
	ErrCodeHandlerPanic            = "mediator.handler_panic"
	ErrCodeImplicitHandlerExists   = "mediator.implicit_handler_exists"
	ErrCodeImplicitHandlerNotFound = "mediator.implicit_handler_not_found"
	ErrCodeResultTypeMismatch      = "mediator.result_type_mismatch"
)

// Code returns an error value that carries only a code string.
// It implements error by returning the code string in Error().
func Code(code string) error { return codedError(code) }

type codedError string

func (e codedError) Error() string { return string(e) }

var (
	ErrInvalidArgument         = Code(ErrCodeInvalidArgument)
	ErrTypeConstraint          = Code(ErrCodeTypeConstraint)
	ErrHandlerNotFound         = Code(ErrCodeHandlerNotFound)
	ErrHandlerExists           = Code(ErrCodeHandlerExists)
	ErrErrorHandlerFailed      = Code(ErrCodeErrorHandlerFailed)
	ErrUnresolved              = Code(ErrCodeUnresolved)
	ErrKindConflict            = Code(ErrCodeKindConflict)
	ErrHandlerPanic            = Code(ErrCodeHandlerPanic)
	ErrImplicitHandlerExists   = Code(ErrCodeImplicitHandlerExists)
	ErrImplicitHandlerNotFound = Code(ErrCodeImplicitHandlerNotFound)
	ErrResultTypeMismatch      = Code(ErrCodeResultTypeMismatch)
)
