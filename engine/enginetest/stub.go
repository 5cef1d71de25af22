// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides an in-memory engine for tests.
package enginetest

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/wavbridge/engine"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("enginetest: context closed")

// Stub is both a Loader and the Context it hands out. Every Load returns the
// same context, so a test can inspect what the code under test did with it.
type Stub struct {
	// Segments is what SegmentText reports after a successful Run.
	Segments []string
	// LoadErr makes Load fail.
	LoadErr error
	// RunErr makes Run fail.
	RunErr error
	// Delay is slept inside Run, to widen race windows.
	Delay time.Duration

	mu          sync.Mutex
	loads       []string
	runs        int
	closes      int
	lastOpts    engine.Options
	lastSamples []float32
	produced    []string

	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

// Load records model and returns s.
func (s *Stub) Load(model string) (engine.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads = append(s.loads, model)
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	return s, nil
}

// Run records the call. It does not hold the stub lock while sleeping, so
// overlapping calls are visible through MaxConcurrency.
func (s *Stub) Run(samples []float32, opts engine.Options) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	for {
		seen := s.maxSeen.Load()
		if n <= seen || s.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs++
	s.lastOpts = opts
	s.lastSamples = slices.Clone(samples)

	if s.closes > 0 {
		s.produced = nil
		return ErrClosed
	}

	if s.RunErr != nil {
		s.produced = nil
		return s.RunErr
	}

	s.produced = slices.Clone(s.Segments)

	return nil
}

func (s *Stub) SegmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.produced)
}

func (s *Stub) SegmentText(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.produced) {
		return ""
	}

	return s.produced[i]
}

func (s *Stub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closes++

	return nil
}

// Loads returns the models passed to Load, in order.
func (s *Stub) Loads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.loads)
}

// Runs is the number of Run calls.
func (s *Stub) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runs
}

// Closes is the number of Close calls.
func (s *Stub) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closes
}

// LastOptions returns the options of the most recent Run.
func (s *Stub) LastOptions() engine.Options {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastOpts
}

// LastSamples returns a copy of the samples of the most recent Run.
func (s *Stub) LastSamples() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.lastSamples)
}

// MaxConcurrency is the largest number of Run calls seen in flight at once.
func (s *Stub) MaxConcurrency() int {
	return int(s.maxSeen.Load())
}
