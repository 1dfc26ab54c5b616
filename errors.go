package ecscore

import "fmt"

// Kind classifies the error kinds the core surfaces, per the error handling
// design: construction-time errors and runtime structural errors are always
// returned, never panicked.
type Kind int

const (
	KindEntityNotFound Kind = iota
	KindComponentNotRegistered
	KindComponentAlreadyPresent
	KindComponentNotPresent
	KindDuplicateStageLabel
	KindStageNotFound
	KindResourceNotFound
	KindResourceAlreadyPresent
	KindAccessConflict
)

func (k Kind) String() string {
	switch k {
	case KindEntityNotFound:
		return "EntityNotFound"
	case KindComponentNotRegistered:
		return "ComponentNotRegistered"
	case KindComponentAlreadyPresent:
		return "ComponentAlreadyPresent"
	case KindComponentNotPresent:
		return "ComponentNotPresent"
	case KindDuplicateStageLabel:
		return "DuplicateStageLabel"
	case KindStageNotFound:
		return "StageNotFound"
	case KindResourceNotFound:
		return "ResourceNotFound"
	case KindResourceAlreadyPresent:
		return "ResourceAlreadyPresent"
	case KindAccessConflict:
		return "AccessConflict"
	}
	return "Unknown"
}

// Error is the typed error value returned for every structural or
// construction-time failure the core surfaces. It wraps an optional
// underlying cause so callers can still use errors.Is/errors.As against it.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, &ecscore.Error{Kind: ecscore.KindEntityNotFound})
// style comparisons match by kind when callers prefer comparing kinds to
// comparing *Error identity. Targets that are not *Error never match.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func newError(k Kind, detail string) *Error {
	return &Error{Kind: k, Detail: detail}
}

// NewError builds an *Error of kind k, for packages outside ecscore (the
// schedule package's construction-time validation) that need to surface
// one of the core's error kinds without reaching into unexported
// constructors.
func NewError(k Kind, detail string) *Error {
	return newError(k, detail)
}

func wrapError(k Kind, detail string, cause error) *Error {
	return &Error{Kind: k, Detail: detail, Cause: cause}
}
