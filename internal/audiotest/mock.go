// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource generates interleaved frames from a waveform function. It
// satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame, channel int) float32

	maxFrames int   // per read cap, 0 for none
	failAt    int   // frame index at which err is returned
	err       error // nil for a clean EOF
	closed    bool
}

// NewMockSource returns a source of totalFrames frames.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalFrames, 0)
}

// NewSineSource generates the same sine on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource generates value on every channel.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(_, _ int) float32 {
		return value
	})
}

// WithShortReads caps every read at frames frames.
func (m *MockSource) WithShortReads(frames int) *MockSource {
	m.maxFrames = frames
	return m
}

// WithError makes the source fail with err once frame has been reached.
func (m *MockSource) WithError(frame int, err error) *MockSource {
	m.failAt = frame
	m.err = err
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	limit := m.totalFrames
	if m.err != nil {
		limit = min(limit, m.failAt)
	}

	if m.generated >= limit {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, limit-m.generated)
	if m.maxFrames > 0 {
		frames = min(frames, m.maxFrames)
	}

	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames

	if m.err == nil && m.generated >= m.totalFrames {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}
