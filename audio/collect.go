// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Collect drains src through a MonoMixer and returns the whole mono signal,
// clamped to [-1, 1]. src is not closed.
func Collect(src Source, sourceBitDepth int) (*goaudio.Float32Buffer, error) {
	mono := NewMonoMixer(src)

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}

	buf := make([]float32, bufSize)
	out := make([]float32, 0, bufSize)

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n == 0 {
			// a source that yields nothing without EOF would spin forever
			break
		}
	}

	return NewMonoBuffer(src.SampleRate(), sourceBitDepth, Clamp(out)), nil
}
