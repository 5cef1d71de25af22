// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"errors"

	"github.com/ik5/wavbridge/audio"
)

var (
	// ErrNilSession is reported for a nil, closed or unknown session.
	ErrNilSession = errors.New("Invalid session handle")
	// ErrNoLoader is returned by Init without a loader.
	ErrNoLoader = errors.New("bridge: nil engine loader")

	ErrEmptySignal   = audio.NewError(audio.ErrEmptySignal, "No audio samples")
	ErrEngineFailure = audio.NewError(audio.ErrEngineFailure, "Transcription failed")
)
