// SPDX-License-Identifier: EPL-2.0

package vorbis

import "github.com/ik5/wavbridge/audio"

var (
	ErrNotVorbisFile = audio.NewError(audio.ErrContainer, "Not an Ogg Vorbis stream")
	ErrNoChannels    = audio.NewError(audio.ErrMalformedHeader, "No channels")
	ErrRead          = audio.NewError(audio.ErrIO, "Failed Vorbis read")
)
