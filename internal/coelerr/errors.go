// Package coelerr defines the error kinds shared across every derivation
// stage. Stage constructors return these instead of throwing, so the task
// pool's errgroup can surface the first one the way a C++ future would
// surface an exception at get().
package coelerr

import "errors"

// Kind classifies a failure the way the original generator's error
// taxonomy does, so callers can branch on errors.Is against a sentinel
// of the right kind without string matching.
type Kind int

const (
	ConfigErrorKind Kind = iota
	GraphBuildErrorKind
	WatchdogWarningKind
	InvalidKindKind
	OutOfRangeKind
	TaskFailureKind
)

func (k Kind) String() string {
	switch k {
	case ConfigErrorKind:
		return "ConfigError"
	case GraphBuildErrorKind:
		return "GraphBuildError"
	case WatchdogWarningKind:
		return "WatchdogWarning"
	case InvalidKindKind:
		return "InvalidKind"
	case OutOfRangeKind:
		return "OutOfRange"
	case TaskFailureKind:
		return "TaskFailure"
	default:
		return "UnknownError"
	}
}

// Error wraps a Kind and a message. WatchdogWarning is the only kind that
// is ever logged instead of returned — see internal/coelog.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.err }

func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

func Wrap(k Kind, msg string, err error) *Error {
	return &Error{Kind: k, Msg: msg, err: err}
}

// Is lets errors.Is(err, coelerr.ConfigError) match any *Error of that kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Sentinels usable with errors.Is(err, coelerr.ConfigError) and friends.
var (
	ConfigError      = &Error{Kind: ConfigErrorKind, Msg: "sentinel"}
	GraphBuildError  = &Error{Kind: GraphBuildErrorKind, Msg: "sentinel"}
	WatchdogWarning  = &Error{Kind: WatchdogWarningKind, Msg: "sentinel"}
	InvalidKindError = &Error{Kind: InvalidKindKind, Msg: "sentinel"}
	OutOfRangeError  = &Error{Kind: OutOfRangeKind, Msg: "sentinel"}
	TaskFailure      = &Error{Kind: TaskFailureKind, Msg: "sentinel"}
)
