package booking

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures so the transport layer can map them
// to status codes without string matching.
type Kind int

const (
	// KindNotFound – restaurant, eater, attendee or reservation missing.
	KindNotFound Kind = iota + 1
	// KindInvalidInput – malformed time or date string.
	KindInvalidInput
	// KindRuleViolation – a business rule blocks the request: outside
	// operating hours, restaurant not accepting reservations, party
	// member conflict, no suitable or available table.
	KindRuleViolation
	// KindPersistence – the storage layer failed to commit.
	KindPersistence
)

// Error is the failure type returned by every engine operation. The
// message is human-readable and names the rule that was violated; for
// conflicts it names the existing reservation's restaurant and window.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidInputf builds a KindInvalidInput error.
func InvalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// RuleViolationf builds a KindRuleViolation error.
func RuleViolationf(format string, args ...any) *Error {
	return &Error{Kind: KindRuleViolation, Message: fmt.Sprintf(format, args...)}
}

// Persistencef builds a KindPersistence error.
func Persistencef(format string, args ...any) *Error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the engine kind from err, or 0 when err is not an
// engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
