// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavbridge/utils"
)

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate. The header sizes
// are patched once the payload is written, so w has to seek.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, 1, int(TagPCM))

	// an empty Write still emits the header and a zero sized data chunk
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalize: %w", err)
	}

	return nil
}

// WriteMono16 quantizes a mono signal and writes it with WriteWAV16.
func WriteMono16(w io.WriteSeeker, sig *goaudio.Float32Buffer) error {
	if sig == nil || sig.Format == nil {
		return fmt.Errorf("wav: encode: %w", ErrNoChannels)
	}

	return WriteWAV16(w, sig.Format.SampleRate, utils.Float32sToInt16s(nil, sig.Data))
}
