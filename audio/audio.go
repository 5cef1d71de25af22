// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"strings"
	"sync"

	goaudio "github.com/go-audio/audio"
)

// Source is a streaming producer of interleaved samples. Container decoders
// that cannot hand out a whole payload at once (mp3, vorbis, aiff) expose one
// and are folded into a mono signal by Collect.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder turns a container into a mono signal.
//
// The returned buffer always has Format.NumChannels == 1 and samples in
// [-1, 1]; Format.SampleRate is the rate declared by the container.
type Decoder interface {
	Decode(r io.ReadSeeker) (*goaudio.Float32Buffer, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs   map[string]Decoder
	fallback Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// SetFallback sets the decoder returned by Lookup for unknown extensions.
func (r *Registry) SetFallback(d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.fallback = d
}

// Lookup picks a decoder from the extension of path. Unknown or missing
// extensions resolve to the fallback decoder, which may be nil.
func (r *Registry) Lookup(path string) (Decoder, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if d, ok := r.Get(ext); ok {
		return d, true
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.fallback, r.fallback != nil
}

// NewMonoBuffer wraps mono samples in a go-audio buffer.
func NewMonoBuffer(sampleRate, sourceBitDepth int, samples []float32) *goaudio.Float32Buffer {
	return &goaudio.Float32Buffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: sourceBitDepth,
	}
}
