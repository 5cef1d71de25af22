// SPDX-License-Identifier: EPL-2.0

// Package wavbridge decodes audio files into normalized mono float32
// signals and hands them to a speech recognition engine.
//
// # Supported Formats
//
//   - WAV: PCM 16/24/32 bit, IEEE float 32 bit, WAVE_FORMAT_EXTENSIBLE
//     (formats/wav)
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Quick Start
//
//	sig, err := wavbridge.DecodeFile(nil, "call.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sig.Format.SampleRate, len(sig.Data))
//
// The signal always has one channel, samples in [-1, 1], and the sample
// rate of the file. Resampling is left to the engine.
//
// # Transcription
//
// Package bridge owns an engine context per session and serializes
// requests on it:
//
//	s, err := bridge.Init(openai.NewLoader(cfg), "whisper-1")
//	defer s.Close()
//
//	res := s.Transcribe("call.wav")
//	fmt.Println(res) // transcript or legacy error text
//
// cmd/whisperbridge exports the same session as a C ABI, cmd/wavscribe is
// the command line and HTTP front end.
//
// See the individual subpackages for more detailed documentation.
package wavbridge
