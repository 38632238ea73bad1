// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iq implements the CS8 codec and Sample Loader: converting
// interleaved signed-byte I/Q pairs, as captured by the acquisition
// pipeline, into complex128 baseband samples for the PSD engine.
package iq

import "fmt"

// FormatError reports that a CS8 byte stream could not be interpreted
// as a whole number of I/Q pairs, or some other structural defect in
// the captured data. It is always fatal for the tile being analyzed.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("iq: %s", e.Reason)
}

// ConvertFn converts a raw CS8 buffer (interleaved int8 I/Q bytes) to
// complex128 samples. It follows the same allocation-free,
// persistent-buffer closure shape used throughout the acquisition
// pipeline: the returned slice aliases internal state and is only
// valid until the next call.
type ConvertFn func(raw []byte) ([]complex128, error)

// NewConvertFn returns a ConvertFn backed by a buffer that grows as
// needed and is otherwise reused across calls.
func NewConvertFn() ConvertFn {
	buf := make([]complex128, 4096)
	return func(raw []byte) ([]complex128, error) {
		if len(raw)%2 != 0 {
			return nil, &FormatError{Reason: fmt.Sprintf("odd byte count %d, CS8 requires interleaved I/Q pairs", len(raw))}
		}
		n := len(raw) / 2
		if cap(buf) < n {
			buf = make([]complex128, n)
		}
		buf = buf[:n]
		for i := 0; i < n; i++ {
			iVal := int8(raw[2*i])
			qVal := int8(raw[2*i+1])
			buf[i] = complex(float64(iVal), float64(qVal))
		}
		return buf, nil
	}
}

// Convert is a convenience wrapper around a fresh ConvertFn for
// one-shot, non-hot-path conversions (for example, in tests). Callers
// on the streaming path should hold their own ConvertFn instead, to
// reuse its buffer.
func Convert(raw []byte) ([]complex128, error) {
	return NewConvertFn()(raw)
}
