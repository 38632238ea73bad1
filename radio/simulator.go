// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package radio

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultChunkSamples is the number of IQ sample pairs the Simulator
// emits per callback invocation, chosen to be small relative to a
// typical tile's byte budget so that a shutdown request is observed
// promptly.
const DefaultChunkSamples = 4096

// Simulator is a synthetic Device that generates CS8 bytes for a
// complex tone plus optional noise, at the sample rate and center
// frequency passed to Configure. It exists so the acquisition and
// analysis pipeline can be built, tested, and demonstrated without a
// physical front-end attached. It is the Device cmd/vhfscand uses
// when -replay is not given, and the one the tile package's capture
// tests stream from.
type Simulator struct {
	// ToneHz is the baseband frequency, relative to the configured
	// center frequency, of the synthetic tone. Zero produces a
	// carrier-only (DC) signal; see NoiseAmplitude for pure noise.
	ToneHz float64
	// ToneAmplitude scales the tone in the int8 domain, [0,127].
	ToneAmplitude float64
	// NoiseAmplitude scales additive Gaussian noise in the int8
	// domain. Zero produces a noise-free tone.
	NoiseAmplitude float64
	// Seed makes the noise sequence reproducible across runs.
	Seed int64
	// ChunkSamples overrides DefaultChunkSamples when non-zero.
	ChunkSamples int

	mu           sync.Mutex
	centerHz     float64
	sampleRateHz float64
	gains        Gains
	configured   bool

	running atomic.Bool
	stop    chan struct{}
	done    chan struct{}
}

var _ Device = (*Simulator)(nil)

// Configure implements Device.
func (s *Simulator) Configure(centerHz, sampleRateHz float64, gains Gains) error {
	if sampleRateHz <= 0 {
		return &ConfigError{CenterHz: centerHz, SampleRateHz: sampleRateHz, Reason: "sample rate must be positive"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerHz = centerHz
	s.sampleRateHz = sampleRateHz
	s.gains = gains
	s.configured = true
	return nil
}

// Start implements Device. It launches a generator goroutine that
// plays the role of the driver-owned callback thread: it produces
// fixed-size CS8 chunks as fast as it can (the simulator has no
// real-time pacing requirement since there is no physical ADC) and
// invokes cb for each one, until Stop is called.
func (s *Simulator) Start(cb StreamCallback) error {
	s.mu.Lock()
	if !s.configured {
		s.mu.Unlock()
		return errors.New("radio: simulator: Start called before Configure")
	}
	if s.running.Load() {
		s.mu.Unlock()
		return errors.New("radio: simulator: already streaming")
	}
	centerHz, sampleRateHz := s.centerHz, s.sampleRateHz
	s.mu.Unlock()

	chunk := s.ChunkSamples
	if chunk <= 0 {
		chunk = DefaultChunkSamples
	}

	s.running.Store(true)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.generate(cb, centerHz, sampleRateHz, chunk)
	return nil
}

func (s *Simulator) generate(cb StreamCallback, centerHz, sampleRateHz float64, chunkSamples int) {
	defer close(s.done)

	rng := rand.New(rand.NewSource(s.Seed))
	buf := make([]byte, chunkSamples*2)
	var sampleIdx uint64
	reset := true

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		for i := 0; i < chunkSamples; i++ {
			phase := 2 * math.Pi * s.ToneHz * float64(sampleIdx) / sampleRateHz
			iVal := s.ToneAmplitude * math.Cos(phase)
			qVal := s.ToneAmplitude * math.Sin(phase)
			if s.NoiseAmplitude > 0 {
				iVal += s.NoiseAmplitude * rng.NormFloat64()
				qVal += s.NoiseAmplitude * rng.NormFloat64()
			}
			buf[2*i] = byte(clampInt8(iVal))
			buf[2*i+1] = byte(clampInt8(qVal))
			sampleIdx++
		}

		cb(buf, reset)
		reset = false
	}
}

func clampInt8(v float64) int8 {
	switch {
	case v > 127:
		return 127
	case v < -128:
		return -128
	default:
		return int8(math.Round(v))
	}
}

// Stop implements Device.
func (s *Simulator) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	close(s.stop)
	select {
	case <-s.done:
	case <-time.After(time.Second):
	}
	return nil
}

// Close implements Device. The Simulator holds no resources beyond
// its own state, so Close is a no-op beyond ensuring Stop has run.
func (s *Simulator) Close() error {
	return s.Stop()
}
