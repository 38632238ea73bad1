// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iq

import (
	"fmt"
	"os"

	"golang.org/x/exp/mmap"
)

// Loader yields the complex baseband samples captured to a single CS8
// file. It is the Sample Loader component: it re-reads what the
// acquisition pipeline wrote and hands the PSD engine a contiguous
// complex128 view.
type Loader interface {
	// Load returns every sample in the file at once.
	Load() ([]complex128, error)
	// Close releases any resources (file handles, mappings) held by
	// the loader. Safe to call once after Load.
	Close() error
}

// mmapLoader memory-maps the file and converts it in one pass. It is
// the default Loader: for the file sizes a single tile produces,
// mapping avoids a second buffered copy of the bytes.
type mmapLoader struct {
	r *mmap.ReaderAt
}

// OpenMapped opens path for memory-mapped reading.
func OpenMapped(path string) (Loader, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iq: mmap open %s: %w", path, err)
	}
	return &mmapLoader{r: r}, nil
}

func (l *mmapLoader) Load() ([]complex128, error) {
	size := l.r.Len()
	if size%2 != 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("file size %d is odd, expected whole I/Q pairs", size)}
	}
	n := size / 2
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = complex(float64(int8(l.r.At(2*i))), float64(int8(l.r.At(2*i+1))))
	}
	return out, nil
}

func (l *mmapLoader) Close() error {
	if err := l.r.Close(); err != nil {
		return fmt.Errorf("iq: mmap close: %w", err)
	}
	return nil
}

// streamLoader reads the file with a conventional buffered read, used
// as a fallback where memory mapping is unavailable or undesired
// (for example, on a filesystem that does not support mmap).
type streamLoader struct {
	f *os.File
}

// OpenStream opens path for ordinary buffered reading.
func OpenStream(path string) (Loader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iq: open %s: %w", path, err)
	}
	return &streamLoader{f: f}, nil
}

func (l *streamLoader) Load() ([]complex128, error) {
	info, err := l.f.Stat()
	if err != nil {
		return nil, fmt.Errorf("iq: stat: %w", err)
	}
	size := info.Size()
	if size%2 != 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("file size %d is odd, expected whole I/Q pairs", size)}
	}
	raw := make([]byte, size)
	if _, err := l.f.ReadAt(raw, 0); err != nil {
		return nil, fmt.Errorf("iq: read: %w", err)
	}
	return Convert(raw)
}

func (l *streamLoader) Close() error {
	if err := l.f.Close(); err != nil {
		return fmt.Errorf("iq: close: %w", err)
	}
	return nil
}
