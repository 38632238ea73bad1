// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package psd

import "math"

// Rearrange swaps the two halves of a PSD vector in place so that bin
// L/2 of the natural DFT order becomes the new bin 0, aligning the
// power values with the engine's already-centered frequency labels.
// length must be even and positive; returns false otherwise without
// modifying psd.
func Rearrange(p []float64) bool {
	l := len(p)
	if l <= 0 || l%2 != 0 {
		return false
	}
	half := l / 2
	tmp := make([]float64, l)
	copy(tmp, p[half:])
	copy(tmp[half:], p[:half])
	copy(p, tmp)
	return true
}

// DCSpikeMaskWidth returns the number of bins on each side of center
// that MaskDCSpikeLegacy and MaskDCSpikeLinear replace, per the
// reference engine's fixed 0.2% fraction of the segment length.
func DCSpikeMaskWidth(segmentLength int) int {
	return int(float64(segmentLength) * 0.002)
}

// MaskDCSpikeLegacy replaces the bins around centerIndex using the
// reference engine's offset/stride pattern: starting from untainted
// bins a fixed 13 samples beyond the mask width, it walks inward with
// strides of 3 (before center) and 2 (after center). The strides and
// the 13-sample offset are not derived from any documented principle;
// they are preserved here verbatim because the detector and
// visualizer were calibrated against this exact shape. Prefer
// MaskDCSpikeLinear for new integrations.
func MaskDCSpikeLegacy(p []float64, centerIndex, width int) bool {
	l := len(p)
	if l == 0 || centerIndex < 0 || centerIndex >= l || width <= 0 {
		return false
	}

	a := centerIndex
	b := centerIndex - (width + 13)
	for i := 0; i < width; i++ {
		b -= 3
		if b >= 0 && a >= 0 && a < l {
			p[a] = p[b]
			a--
		}
	}

	a = centerIndex
	b = centerIndex - (width + 13)
	for i := 0; i < width; i++ {
		if a < l && b >= 0 && b < l {
			p[a] = p[b]
			a++
			b -= 2
		}
	}
	return true
}

// MaskDCSpikeLinear replaces the 2*width+1 bins centered on centerIndex
// with a linear interpolation between the untainted bins immediately
// outside the masked region. It produces the same "no spike" shape
// the legacy pattern was built to approximate, without the
// unexplained 13-sample offset.
func MaskDCSpikeLinear(p []float64, centerIndex, width int) bool {
	l := len(p)
	if l == 0 || centerIndex < 0 || centerIndex >= l || width <= 0 {
		return false
	}
	lo := centerIndex - width
	hi := centerIndex + width
	if lo < 1 {
		lo = 1
	}
	if hi > l-2 {
		hi = l - 2
	}
	if lo > hi {
		return false
	}
	left := p[lo-1]
	right := p[hi+1]
	span := hi - lo + 2
	for i := lo; i <= hi; i++ {
		frac := float64(i-lo+1) / float64(span)
		p[i] = left + frac*(right-left)
	}
	return true
}

// MapAbsoluteMHz converts a baseband frequency vector in Hz to
// absolute MHz given the tile's center frequency in Hz, in place.
func MapAbsoluteMHz(fBasebandHz []float64, centerHz float64) {
	for i, f := range fBasebandHz {
		fBasebandHz[i] = (f + centerHz) / 1e6
	}
}

// CalibrationOffset computes kappa = ||10*log10(pLargeBin0)| -
// |10*log10(pSmallBin0)||, the dual-resolution calibration offset
// that brings the detector's dense spectrum and the visualizer's
// compact spectrum onto a common dB scale at their first bin. The
// nested absolute values are preserved from the reference formula as
// an open question: they behave oddly when either operand is
// negative and should be validated empirically against the
// visualizer's alignment, not assumed correct by inspection.
func CalibrationOffset(pLargeBin0, pSmallBin0 float64) float64 {
	a := math.Abs(10 * safeLog10(pLargeBin0))
	b := math.Abs(10 * safeLog10(pSmallBin0))
	return math.Abs(a - b)
}

// MinDBFloor is the sentinel dB value substituted for log10(0) so that
// a silent (all-zero) capture produces a large-but-finite noise floor
// instead of -Inf, per the silence scenario's guard requirement.
const MinDBFloor = -200

func safeLog10(v float64) float64 {
	if v <= 0 {
		return MinDBFloor / 10
	}
	return math.Log10(v)
}

// ToDB converts a linear PSD vector to dB (10*log10), applying the
// MinDBFloor guard for non-positive values, and adds offsetDB to every
// bin (used to apply the calibration offset).
func ToDB(p []float64, offsetDB float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = 10*safeLog10(v) + offsetDB
	}
	return out
}
