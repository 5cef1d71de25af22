// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// Error classes shared by every decoder and by the transcription bridge.
// Concrete errors unwrap to one of these, so callers match with errors.Is.
var (
	ErrContainer         = errors.New("container error")
	ErrMalformedHeader   = errors.New("malformed header")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrIO                = errors.New("i/o error")
	ErrEmptySignal       = errors.New("empty signal")
	ErrEngineFailure     = errors.New("engine failure")
)

// Error is a decode or transcription failure with a fixed, human readable
// message. The message is what crosses the foreign boundary, so it is kept
// stable; the class is only reachable through errors.Is.
type Error struct {
	class error
	msg   string
}

// NewError returns an error reported as msg and classified as class.
func NewError(class error, msg string) *Error {
	return &Error{class: class, msg: msg}
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.class }

// Class returns the class sentinel of err, or nil when err carries none.
func Class(err error) error {
	for _, c := range []error{
		ErrContainer,
		ErrMalformedHeader,
		ErrUnsupportedFormat,
		ErrIO,
		ErrEmptySignal,
		ErrEngineFailure,
	} {
		if errors.Is(err, c) {
			return c
		}
	}

	return nil
}

// Message returns the fixed message of the first Error in err's chain, so a
// wrapped cause never leaks to callers that compare strings. Errors without
// an Error in their chain report err.Error(). A nil err is "".
func Message(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}

	return err.Error()
}
