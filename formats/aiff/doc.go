// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into mono float32 signals.
//
// Parsing is done by github.com/go-audio/aiff. Signed PCM at 8, 16, 24 and
// 32 bit is accepted; samples are divided by 2^(bits-1) and the channels
// are averaged into one.
//
//	f, _ := os.Open("speech.aiff")
//	defer f.Close()
//
//	sig, err := aiff.Decoder{}.Decode(f)
//
// Errors unwrap to the classes in package audio, the same way the WAV
// decoder's do.
package aiff
