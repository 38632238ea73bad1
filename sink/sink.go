// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sink implements the per-tile Sample Sink: a buffered file
// writer with a byte budget. Each write is clamped so that the total
// written never exceeds the budget; reaching the budget or a short
// write both terminate the tile's capture.
package sink

import (
	"bufio"
	"fmt"
	"os"
)

// DefaultBufferSize is the recommended minimum userspace buffer size
// for the underlying file, per the acquisition pipeline's sustained
// write-rate requirement.
const DefaultBufferSize = 8 * 1024

// Sink writes captured bytes to a single per-tile file up to a fixed
// byte budget. A Sink is used for exactly one tile and is not safe for
// concurrent use; it is written to from the ring-drain side of the
// pipeline only.
type Sink struct {
	file   *os.File
	out    *bufio.Writer
	budget uint64
	total  uint64
	done   bool
}

// Open creates (truncating if necessary) the file at path and returns
// a Sink that will accept at most budgetBytes of data before
// signalling completion.
func Open(path string, budgetBytes uint64, bufSize int) (*Sink, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", path, err)
	}
	return &Sink{
		file:   f,
		out:    bufio.NewWriterSize(f, bufSize),
		budget: budgetBytes,
	}, nil
}

// Write implements ring.Sink and io.Writer. It clamps p to the
// remaining budget before writing, so the caller will observe
// n < len(p) once the budget is reached rather than an error. A short
// write from the underlying file (n < len(clamped)) is reported as an
// error: per the acquisition pipeline's contract, a partial fwrite is
// fatal for the tile.
// Write assumes p is always an even-length run of IQ byte pairs, as
// produced by the driver callback; since the budget is itself even,
// the running total therefore stays even through every clamp.
func (s *Sink) Write(p []byte) (int, error) {
	if s.done {
		return 0, nil
	}
	remaining := s.budget - s.total
	clamped := p
	if uint64(len(clamped)) > remaining {
		clamped = clamped[:remaining]
	}
	if len(clamped) == 0 {
		s.done = true
		return 0, nil
	}

	n, err := s.out.Write(clamped)
	s.total += uint64(n)
	if err != nil {
		return n, fmt.Errorf("sink: write: %w", err)
	}
	if n != len(clamped) {
		return n, fmt.Errorf("sink: short write: wrote %d of %d bytes", n, len(clamped))
	}
	if s.total >= s.budget {
		s.done = true
	}
	return n, nil
}

// Done reports whether the byte budget has been reached. The Tile
// Orchestrator polls this (or waits on a completion signal derived
// from it) to know when to stop the driver.
func (s *Sink) Done() bool {
	return s.done
}

// BytesWritten returns the total number of bytes written so far.
func (s *Sink) BytesWritten() uint64 {
	return s.total
}

// Close flushes any buffered data and closes the underlying file. It
// is safe to call once after the tile's capture has ended.
func (s *Sink) Close() error {
	if err := s.out.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("sink: flush: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("sink: close: %w", err)
	}
	return nil
}
