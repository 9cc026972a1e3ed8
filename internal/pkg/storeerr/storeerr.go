package storeerr

import (
	"errors"
	"fmt"
)

// Kind classifies an adapter-level failure. Both store adapters translate
// driver errors into exactly one of these before the error crosses the
// adapter boundary.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindConstraint  Kind = "constraint"
	KindSyntax      Kind = "syntax"
	KindUnavailable Kind = "unavailable"
	KindInternal    Kind = "internal"
)

// StoreError is the single failure type raised past an adapter boundary.
type StoreError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func New(kind Kind, op string, err error) error {
	return &StoreError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the classification of err, or KindInternal for errors
// that did not come through an adapter.
func KindOf(err error) Kind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
