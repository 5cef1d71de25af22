// SPDX-License-Identifier: EPL-2.0

package aiff

import "github.com/ik5/wavbridge/audio"

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = audio.NewError(audio.ErrContainer, "Not an AIFF file")

	// ErrUnsupportedAiffLayout is a COMM chunk without channels or rate
	ErrUnsupportedAiffLayout = audio.NewError(audio.ErrMalformedHeader, "Unsupported AIFF layout")

	// ErrUnsupportedBitDepth covers everything but 8, 16, 24 and 32 bit PCM
	ErrUnsupportedBitDepth = audio.NewError(audio.ErrUnsupportedFormat, "Unsupported AIFF bit depth")

	ErrRead = audio.NewError(audio.ErrIO, "Failed AIFF read")
)
