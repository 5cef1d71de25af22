// SPDX-License-Identifier: EPL-2.0

package bridge

import "github.com/ik5/wavbridge/audio"

// Result is the outcome of one transcription. Exactly one of Text and Err
// is meaningful: Err non-nil means the request failed.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Err == nil }

// String flattens the result into the single string older callers expect:
// the transcript on success, the fixed error message otherwise. Wrapped
// causes stay on Err for errors.Is and logging.
func (r Result) String() string {
	if r.Err != nil {
		return audio.Message(r.Err)
	}

	return r.Text
}
