// Package errs defines the typed error kinds shared across marketframe.
package errs

import "fmt"

// Kind identifies one of the error categories the compute, alignment, and
// calendar layers can surface. Callers match on Kind rather than on error
// string content.
type Kind int

const (
	// TypeMismatch means a kernel encountered incompatible column types.
	TypeMismatch Kind = iota
	// LengthMismatch means a binary op saw arrays of differing length
	// where alignment does not apply.
	LengthMismatch
	// IndexMismatch means an operation requiring identical indexes found
	// different ones.
	IndexMismatch
	// LabelNotFound means loc() was asked for an absent label.
	LabelNotFound
	// InvalidRange means a slice/schedule end preceded its start.
	InvalidRange
	// InvalidOverride means a calendar special time was registered
	// against an undefined market-time type.
	InvalidOverride
	// UnknownMarketTime means get_time was asked for an absent type.
	UnknownMarketTime
	// UnknownTimezone means a tz name did not resolve against the tz
	// database.
	UnknownTimezone
	// UnsupportedKernel means a kernel name was not found in the
	// registry.
	UnsupportedKernel
	// NullPointer is a defensive invariant: a nil columnar input where
	// one is required.
	NullPointer
)

func (k Kind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case LengthMismatch:
		return "LengthMismatch"
	case IndexMismatch:
		return "IndexMismatch"
	case LabelNotFound:
		return "LabelNotFound"
	case InvalidRange:
		return "InvalidRange"
	case InvalidOverride:
		return "InvalidOverride"
	case UnknownMarketTime:
		return "UnknownMarketTime"
	case UnknownTimezone:
		return "UnknownTimezone"
	case UnsupportedKernel:
		return "UnsupportedKernel"
	case NullPointer:
		return "NullPointer"
	default:
		return "Unknown"
	}
}

// Error is a category-tagged, display-safe error. It never carries raw
// pointers or allocator state.
type Error struct {
	Kind    Kind
	Op      string // operation name, e.g. "sum", "loc", "schedule"
	Column  string // column name, when relevant; empty otherwise
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (column %q): %s", e.Op, e.Kind, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New builds an Error with no wrapped cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// WithColumn attaches a column name for context.
func (e *Error) WithColumn(col string) *Error {
	e.Column = col
	return e
}

// Wrap builds an Error that carries an underlying cause.
func Wrap(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: cause.Error(), Wrapped: cause}
}

// Is reports whether err is an *Error of the given kind, unwrapping as
// needed.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
