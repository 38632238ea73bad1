// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package psd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ComputeError reports that a Welch estimate could not be computed,
// per the PSD Engine's boundary contract: insufficient samples for
// even one segment is an error, not a silently-empty result.
type ComputeError struct {
	Reason string
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("psd: %s", e.Reason)
}

// Result is the output of a single Welch pass: a PSD vector and its
// matching bin-frequency vector, both of length SegmentLength, in the
// natural DFT bin order (index 0 is the zero-frequency bin; the
// frequency vector below is already expressed as if centered, per the
// engine's bin-frequency formula — see Welch for the full contract).
type Result struct {
	P []float64
	F []float64
}

// Welch computes a Welch's-method PSD estimate of signal using a
// Hamming window of length segmentLength and the given overlap
// fraction in [0, 1). fs is the sample rate in Hz.
//
// The returned frequency vector uses f[i] = -fs/2 + i*(fs/L), the
// engine's natural bin-frequency formula. The returned PSD vector P
// is in natural DFT output order: P[0] is the zero-frequency bin,
// P[L/2] is the Nyquist-adjacent bin. Swapping P's two halves (see
// Rearrange) aligns it with F's already-centered numbering; this
// split between "centered frequency labels" and "natural order power
// values" is deliberate and mirrors the reference implementation.
func Welch(signal []complex128, fs float64, segmentLength int, overlap float64) (Result, error) {
	if segmentLength <= 0 || segmentLength%2 != 0 {
		return Result{}, &ComputeError{Reason: fmt.Sprintf("segment length %d must be even and positive", segmentLength)}
	}
	if overlap < 0 || overlap >= 1 {
		return Result{}, &ComputeError{Reason: fmt.Sprintf("overlap %v must be in [0,1)", overlap)}
	}
	n := len(signal)
	if n < segmentLength {
		return Result{}, &ComputeError{Reason: fmt.Sprintf("signal has %d samples, fewer than segment length %d", n, segmentLength)}
	}

	step := int(float64(segmentLength) * (1 - overlap))
	if step <= 0 {
		step = 1
	}
	k := (n-segmentLength)/step + 1

	window := Hamming(segmentLength)
	u := windowNormalization(window)

	fft := fourier.NewCmplxFFT(segmentLength)
	segment := make([]complex128, segmentLength)
	var coeffs []complex128

	p := make([]float64, segmentLength)
	for seg := 0; seg < k; seg++ {
		start := seg * step
		for i := 0; i < segmentLength; i++ {
			segment[i] = signal[start+i] * complex(window[i], 0)
		}
		coeffs = fft.Coefficients(coeffs, segment)
		for i := 0; i < segmentLength; i++ {
			mag := cmplxAbs(coeffs[i])
			p[i] += (mag * mag) / (fs * u)
		}
	}
	for i := range p {
		p[i] /= float64(k)
	}

	f := make([]float64, segmentLength)
	df := fs / float64(segmentLength)
	for i := range f {
		f[i] = -fs/2 + float64(i)*df
	}

	return Result{P: p, F: f}, nil
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
