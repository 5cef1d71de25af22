// SPDX-License-Identifier: EPL-2.0

// Package bridge runs the decode and recognition pipeline behind a session.
//
// A Session is created by Init from an engine.Loader and a model reference
// and owns the resulting engine.Context until Close. Each Transcribe call
//
//  1. decodes the file into a mono signal (RIFF/WAVE content is always
//     read as WAV; the default registry reads everything as WAV, and
//     WithRegistry can route other containers by extension),
//  2. rejects an empty signal with ErrEmptySignal,
//  3. applies audio.AutoGain,
//  4. runs the engine once over the whole signal, and
//  5. concatenates the engine's segments in order.
//
// The engine is never called after a decode error. Requests on one session
// are serialized by a mutex held for the whole pipeline, so sharing a
// session between goroutines is safe but not parallel.
//
// # Results
//
// Transcribe returns a Result. Result.String gives the single string the C
// ABI hands out: the transcript, or the error message ("No audio samples",
// "Transcription failed", "Not a RIFF/WAVE file", ...). New callers should
// check Result.Err instead of parsing text:
//
//	res := sess.Transcribe("call.wav")
//	if !res.OK() {
//	    if bridge.IsDecodeError(res.Err) {
//	        // bad input, do not retry
//	    }
//	    return res.Err
//	}
//	fmt.Println(res.Text)
//
// # Handles
//
// Table hands out integer tokens for sessions. Lookups of unknown tokens
// fail instead of dereferencing stale memory, and token 0 is reserved as
// the failure value.
package bridge
