// SPDX-License-Identifier: EPL-2.0

// Command whisperbridge builds the C ABI of the transcription bridge:
//
//	go build -buildmode=c-shared -o libwhisperbridge.so ./cmd/whisperbridge
//
// The exported functions keep the whisper_bridge.h signatures, so existing
// hosts link against it unchanged. Handles are table tokens, not pointers.
// Engine settings come from WAVSCRIBE_* variables and an optional .env.
package main

/*
#include <stdint.h>
#include <stdlib.h>

static void* handle_to_ptr(uintptr_t h) { return (void*)h; }
static uintptr_t ptr_to_handle(void* p) { return (uintptr_t)p; }
*/
import "C"

import (
	"unsafe"

	"github.com/ik5/wavbridge/bridge"
)

//export whisper_bridge_init
func whisper_bridge_init(modelPath *C.char) unsafe.Pointer {
	if modelPath == nil {
		return nil
	}

	h := initSession(C.GoString(modelPath))

	return C.handle_to_ptr(C.uintptr_t(h))
}

//export whisper_bridge_transcribe_wav
func whisper_bridge_transcribe_wav(handle unsafe.Pointer, wavPath *C.char) *C.char {
	if handle == nil {
		return nil
	}

	var path string
	if wavPath != nil {
		path = C.GoString(wavPath)
	}

	return C.CString(transcribe(toHandle(handle), path))
}

//export whisper_bridge_free_str
func whisper_bridge_free_str(s *C.char) {
	if s == nil {
		return
	}

	C.free(unsafe.Pointer(s))
}

//export whisper_bridge_free
func whisper_bridge_free(handle unsafe.Pointer) {
	if handle == nil {
		return
	}

	release(toHandle(handle))
}

func toHandle(p unsafe.Pointer) bridge.Handle {
	return bridge.Handle(C.ptr_to_handle(p))
}

func main() {}
