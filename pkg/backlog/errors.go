package backlog

import (
	"errors"
	"fmt"
)

// Kind classifies a client failure. Callers use it to tell failures that
// must abort startup from ones the navigation path can swallow.
type Kind int

const (
	// KindConfig means a required identifier or credential is missing.
	KindConfig Kind = iota + 1
	// KindTransport means the request never produced a response.
	KindTransport
	// KindDecode means the response body did not match the expected schema.
	KindDecode
	// KindStatus means the server answered with a non-2xx status.
	KindStatus
)

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrConfig    = errors.New("backlog: configuration error")
	ErrTransport = errors.New("backlog: transport error")
	ErrDecode    = errors.New("backlog: decode error")
	ErrStatus    = errors.New("backlog: unexpected status")
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindStatus:
		return "status"
	}
	return "unknown"
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindTransport:
		return ErrTransport
	case KindDecode:
		return ErrDecode
	case KindStatus:
		return ErrStatus
	}
	return nil
}

// Error is the only error type returned by this package.
type Error struct {
	Kind       Kind
	Op         string // "fetch issues", "fetch comments PROJ-1", ...
	StatusCode int    // set for KindStatus
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("backlog: %s: %s error", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of a backlog error anywhere in err's chain, or 0.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

func configError(op, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Op: op, Err: fmt.Errorf(format, args...)}
}
