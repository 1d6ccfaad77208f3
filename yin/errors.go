package yin

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind tags the semantic class of a parse error (spec.md §7). Names are
// semantic, not keyword-bound.
type ErrorKind int8

const (
	ErrKindInternal ErrorKind = iota
	ErrKindOutOfMemory
	ErrKindInvalidCharacter
	ErrKindDuplicateAttribute
	ErrKindUnexpectedAttribute
	ErrKindMissingAttribute
	ErrKindDuplicateChild
	ErrKindUnexpectedChild
	ErrKindMissingChild
	ErrKindFirstViolation
	ErrKindOrderingViolation
	ErrKindVersionTooLow
	ErrKindInvalidEnum
	ErrKindOutOfRange
	ErrKindInvalidNumber
	ErrKindInvalidDate
	ErrKindNameCollision
	ErrKindInvalidMinMax
	ErrKindInvalidDeviateSubstatement
	ErrKindModuleSubmoduleExpected
	ErrKindTrailingGarbage
)

var errorKindNames = [...]string{
	ErrKindInternal:                   "Internal",
	ErrKindOutOfMemory:                "OutOfMemory",
	ErrKindInvalidCharacter:           "InvalidCharacter",
	ErrKindDuplicateAttribute:         "DuplicateAttribute",
	ErrKindUnexpectedAttribute:        "UnexpectedAttribute",
	ErrKindMissingAttribute:           "MissingAttribute",
	ErrKindDuplicateChild:             "DuplicateChild",
	ErrKindUnexpectedChild:            "UnexpectedChild",
	ErrKindMissingChild:               "MissingChild",
	ErrKindFirstViolation:             "FirstViolation",
	ErrKindOrderingViolation:          "OrderingViolation",
	ErrKindVersionTooLow:              "VersionTooLow",
	ErrKindInvalidEnum:                "InvalidEnum",
	ErrKindOutOfRange:                 "OutOfRange",
	ErrKindInvalidNumber:              "InvalidNumber",
	ErrKindInvalidDate:                "InvalidDate",
	ErrKindNameCollision:              "NameCollision",
	ErrKindInvalidMinMax:              "InvalidMinMax",
	ErrKindInvalidDeviateSubstatement: "InvalidDeviateSubstatement",
	ErrKindModuleSubmoduleExpected:    "ModuleSubmoduleExpected",
	ErrKindTrailingGarbage:            "TrailingGarbage",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return "Unknown"
}

// Error is the error type returned by every core parse operation. It carries
// the structured fields spec.md §7 requires: kind, source location (line,
// containing statement, offending text) and an optional detail string.
type Error struct {
	Kind      ErrorKind
	Line      int
	Statement StatementKind
	Token     string
	Detail    string

	cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("line %d: in %s: %s", e.Line, e.Statement, e.Kind)
	if e.Token != "" {
		msg += fmt.Sprintf(" (%q)", e.Token)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap allows errors.Is/errors.As to see through to any wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

func newErr(kind ErrorKind, line int, stmt StatementKind, token, detail string) *Error {
	return &Error{Kind: kind, Line: line, Statement: stmt, Token: token, Detail: detail}
}

func wrapErr(cause error, kind ErrorKind, line int, stmt StatementKind, token, detail string) *Error {
	e := newErr(kind, line, stmt, token, detail)
	e.cause = errors.WithStack(cause)
	return e
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
