package service

import "errors"

// ErrorKind classifies a ServiceError for the transport layer.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAuth
	KindConflict
	KindPersistence
)

// ServiceError carries the client-facing message of a failed operation and,
// for persistence failures, the underlying cause.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message}
}

func NewAuthError(message string) *ServiceError {
	return &ServiceError{Kind: KindAuth, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewPersistenceError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the kind of the first ServiceError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}
