// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into mono float32 signals.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. Its float output is
// averaged across channels and clamped to [-1, 1].
//
//	f, _ := os.Open("speech.ogg")
//	defer f.Close()
//
//	sig, err := vorbis.Decoder{}.Decode(f)
package vorbis
