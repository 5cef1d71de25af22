// SPDX-License-Identifier: EPL-2.0

// Package openai is an engine backend for OpenAI compatible transcription
// servers: the OpenAI API itself, whisper.cpp's server and LocalAI all
// accept the same /v1/audio/transcriptions request.
//
// Each Run encodes the signal as a 16-bit mono WAV, uploads it with
// github.com/sashabaranov/go-openai and asks for verbose_json, so the
// server's segments map one to one onto engine segments. A server that
// returns only text yields a single segment.
//
//	loader := openai.NewLoader(openai.Config{
//	    BaseURL: "http://localhost:8080/v1",
//	    Timeout: 2 * time.Minute,
//	})
//	sess, err := bridge.Init(loader, "whisper-1")
package openai
