package errs

import "fmt"

// Error is the error value produced by every layer of the system. It is
// never raised as a panic; every fallible operation returns one as a plain
// Go error, and the executor converts it into a Response at the boundary.
//
// Shape follows an Op/Kind/wrapped-error error type, simplified to this
// system's closed Kind set and extended with Line/Column for
// CommandError, the only variant that needs source position.
type Error struct {
	Kind   Kind
	Op     string // optional: the command/operation token implicated.
	Line   int    // 1-based; only meaningful for Kind == CommandError.
	Column int    // 1-based; only meaningful for Kind == CommandError.
	reason string // optional human-readable detail, used by CommandError.
}

// New constructs an *Error of the given kind with no extra context.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// NewCommandError constructs the CommandError variant carrying a
// human-readable reason and the source position of the offending token.
func NewCommandError(reason string, line, column int) *Error {
	return &Error{Kind: CommandError, reason: reason, Line: line, Column: column}
}

func (e *Error) Error() string {
	if e.Kind == CommandError {
		return fmt.Sprintf("%s (line %d, column %d)", e.reason, e.Line, e.Column)
	}
	if msg, ok := message[e.Kind]; ok {
		if e.Op != "" {
			return e.Op + ": " + msg
		}
		return msg
	}
	return "unknown error"
}

// Reason returns the CommandError detail message, or "" for other kinds.
func (e *Error) Reason() string {
	if e.Kind == CommandError {
		return e.reason
	}
	return ""
}

// Is reports whether target is an *Error with the same Kind, satisfying
// errors.Is(err, errs.New(SomeKind)) style comparisons.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
