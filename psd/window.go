// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package psd implements the PSD Engine and Spectrum Post-processor:
// Welch's method over complex baseband samples, followed by centered
// rearrangement, DC-spike masking, absolute-frequency mapping, and the
// dual-resolution calibration offset used to align a dense detector
// spectrum with a compact visualizer spectrum.
package psd

import "math"

// Hamming returns an L-point Hamming window, w[n] = 0.54 - 0.46*cos(2*pi*n/(L-1)).
func Hamming(l int) []float64 {
	w := make([]float64, l)
	if l == 1 {
		w[0] = 1
		return w
	}
	for n := 0; n < l; n++ {
		w[n] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(n)/float64(l-1))
	}
	return w
}

// windowNormalization returns U = (sum(w[i]^2)) / L, the power
// normalization Welch's method divides out.
func windowNormalization(w []float64) float64 {
	var sum float64
	for _, v := range w {
		sum += v * v
	}
	return sum / float64(len(w))
}
