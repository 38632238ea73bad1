// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package radio

import (
	"sync"
	"testing"
	"time"
)

func TestSimulatorRejectsStartBeforeConfigure(t *testing.T) {
	t.Parallel()
	s := &Simulator{}
	if err := s.Start(func(data []byte, reset bool) {}); err == nil {
		t.Fatalf("expected error starting an unconfigured simulator")
	}
}

func TestSimulatorConfigureRejectsNonPositiveRate(t *testing.T) {
	t.Parallel()
	s := &Simulator{}
	err := s.Configure(100e6, 0, Gains{})
	if err == nil {
		t.Fatalf("expected ConfigError for zero sample rate")
	}
	var cfgErr *ConfigError
	if !asConfigError(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
}

func asConfigError(err error, target **ConfigError) bool {
	ce, ok := err.(*ConfigError)
	if ok {
		*target = ce
	}
	return ok
}

func TestSimulatorStreamsEvenLengthChunksUntilStopped(t *testing.T) {
	t.Parallel()

	s := &Simulator{
		ToneHz:        1000,
		ToneAmplitude: 80,
		ChunkSamples:  64,
	}
	if err := s.Configure(100e6, 2.4e6, NewGains(WithAGC(true))); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	var mu sync.Mutex
	var chunks [][]byte
	var sawReset bool

	if err := s.Start(func(data []byte, reset bool) {
		mu.Lock()
		defer mu.Unlock()
		if len(chunks) == 0 {
			sawReset = reset
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		chunks = append(chunks, cp)
	}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		mu.Lock()
		n := len(chunks)
		mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for simulator output, got %d chunks", n)
		case <-time.After(time.Millisecond):
		}
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if !sawReset {
		t.Errorf("expected first callback to report reset=true")
	}
	for i, c := range chunks {
		if len(c) != 128 {
			t.Fatalf("chunk %d: got %d bytes, want 128 (64 IQ pairs)", i, len(c))
		}
		if len(c)%2 != 0 {
			t.Fatalf("chunk %d has odd length %d", i, len(c))
		}
	}
}

func TestSimulatorStopIsIdempotent(t *testing.T) {
	t.Parallel()
	s := &Simulator{ChunkSamples: 16}
	if err := s.Configure(100e6, 2.4e6, Gains{}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := s.Start(func(data []byte, reset bool) {}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop should be a no-op, got: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestClampInt8(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   float64
		want int8
	}{
		{0, 0},
		{127, 127},
		{128, 127},
		{1000, 127},
		{-128, -128},
		{-1000, -128},
		{1.4, 1},
		{1.6, 2},
	}
	for _, c := range cases {
		if got := clampInt8(c.in); got != c.want {
			t.Errorf("clampInt8(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
