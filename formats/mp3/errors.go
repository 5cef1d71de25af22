// SPDX-License-Identifier: EPL-2.0

package mp3

import "github.com/ik5/wavbridge/audio"

var (
	ErrNotMP3File = audio.NewError(audio.ErrContainer, "Not an MP3 stream")
	ErrRead       = audio.NewError(audio.ErrIO, "Failed MP3 read")
)
