// Package fault defines the error taxonomy shared by repositories and
// services. Every failure that crosses the service boundary is one of
// these kinds; the CLI adapters translate them into user-facing messages.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind int

const (
	// KindUnknown is the zero value; errors without a kind report it.
	KindUnknown Kind = iota
	// KindValidation marks bad input shape or value, caught before persistence.
	KindValidation
	// KindDuplicate marks a uniqueness violation.
	KindDuplicate
	// KindNotFound marks a missing referenced id.
	KindNotFound
	// KindImmutable marks a mutation attempt on a validated bon de commande.
	KindImmutable
	// KindInsufficientBudget marks a validation that would drive the
	// available amount negative.
	KindInsufficientBudget
	// KindIntegrity marks a delete that would orphan dependent rows or
	// break a ledger invariant.
	KindIntegrity
	// KindStorage marks a store-level failure (disk I/O, corruption).
	// Fatal for the current operation only, never retried.
	KindStorage
)

// Error is a classified domain error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a classified error around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err is a fault of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the user-facing message for err. Storage faults and
// unclassified errors get a generic message so internal details never
// reach the presentation layer.
func Message(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		if fe.Kind == KindStorage {
			return "Erreur d'accès à la base de données"
		}
		return fe.Msg
	}
	return "Une erreur inattendue s'est produite"
}
