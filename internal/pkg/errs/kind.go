package errs

import (
	"errors"
	"fmt"
)

// Kind classifies failures that callers are expected to handle.
// Anything that is not a *DomainError is treated as internal.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindBadRequest Kind = "BAD_REQUEST"
	KindForbidden  Kind = "FORBIDDEN"
	KindConflict   Kind = "CONFLICT"
)

func (k Kind) String() string {
	return string(k)
}

type DomainError struct {
	kind    Kind
	reason  string
	message string
}

func NewDomainError(kind Kind, reason, message string) *DomainError {
	return &DomainError{kind: kind, reason: reason, message: message}
}

func NotFound(reason, message string) *DomainError {
	return NewDomainError(KindNotFound, reason, message)
}

func BadRequest(reason, message string) *DomainError {
	return NewDomainError(KindBadRequest, reason, message)
}

func Forbidden(reason, message string) *DomainError {
	return NewDomainError(KindForbidden, reason, message)
}

func Conflict(reason, message string) *DomainError {
	return NewDomainError(KindConflict, reason, message)
}

func (e *DomainError) Error() string {
	return e.message
}

func (e *DomainError) Kind() Kind      { return e.kind }
func (e *DomainError) Reason() string  { return e.reason }
func (e *DomainError) Message() string { return e.message }

// Is matches on kind and reason, so a sentinel still matches after its
// message has been specialised with Withf.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.reason == t.reason
}

func (e *DomainError) Withf(format string, args ...any) *DomainError {
	return &DomainError{kind: e.kind, reason: e.reason, message: fmt.Sprintf(format, args...)}
}

func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func KindOf(err error) (Kind, bool) {
	de, ok := AsDomainError(err)
	if !ok {
		return "", false
	}
	return de.kind, true
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
