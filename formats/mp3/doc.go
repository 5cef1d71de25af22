// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into mono float32 signals.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always yields
// 16-bit stereo at the stream's sample rate. The two channels are averaged
// into one; the rate is kept as is.
//
//	f, _ := os.Open("speech.mp3")
//	defer f.Close()
//
//	sig, err := mp3.Decoder{}.Decode(f)
//
// A stream go-mp3 cannot open fails with ErrNotMP3File; a failure while
// decoding frames is wrapped in ErrRead.
package mp3
