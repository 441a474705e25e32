package simydb

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrorKind classifies where in the statement lifecycle a failure occurred.
type ErrorKind int

const (
	// KindConnection indicates a failure while opening the database.
	KindConnection ErrorKind = iota + 1
	// KindPrepare indicates the engine rejected the statement text.
	KindPrepare
	// KindExecution indicates a runtime failure during bind or execute.
	KindExecution
	// KindResult indicates a failure while iterating a result cursor.
	KindResult
	// KindSchema indicates a failure inside a multi-step schema operation.
	KindSchema
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindPrepare:
		return "prepare"
	case KindExecution:
		return "execution"
	case KindResult:
		return "result"
	case KindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// Error is a structured failure carrying diagnostic context alongside the
// human-readable message. It is immutable once constructed.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Code is the engine's numeric error code, 0 when unavailable.
	Code int

	// Message is the human-readable error message.
	Message string

	// SQL is the originating statement text, empty when not applicable.
	SQL string

	// Bindings is a snapshot of the bound parameters, nil when not applicable.
	Bindings []any

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.SQL != "" {
		return fmt.Sprintf("simydb [%s] %s (sql: %s)", e.Kind, e.Message, e.SQL)
	}
	return fmt.Sprintf("simydb [%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError builds an *Error around cause, lifting the engine error code when
// the cause is a sqlite3.Error.
func newError(kind ErrorKind, cause error, sql string, bindings []any) *Error {
	e := &Error{
		Kind:     kind,
		Message:  cause.Error(),
		SQL:      sql,
		Bindings: bindings,
		Cause:    cause,
	}
	var sqliteErr sqlite3.Error
	if errors.As(cause, &sqliteErr) {
		e.Code = int(sqliteErr.Code)
	}
	return e
}

// kindOf reports err's kind, or 0 if err is not a *Error.
func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsConnection reports whether err is a connection-open failure.
func IsConnection(err error) bool { return kindOf(err) == KindConnection }

// IsPrepare reports whether err is a statement-preparation failure.
func IsPrepare(err error) bool { return kindOf(err) == KindPrepare }

// IsExecution reports whether err is a bind/execute failure.
func IsExecution(err error) bool { return kindOf(err) == KindExecution }

// IsResult reports whether err is a result-iteration failure.
func IsResult(err error) bool { return kindOf(err) == KindResult }

// IsSchema reports whether err is a schema-operation failure.
func IsSchema(err error) bool { return kindOf(err) == KindSchema }
