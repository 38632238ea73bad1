// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package detect implements the Channel Detector: per-channel
// median/max/SNR statistics over a frequency window of the
// high-resolution PSD, and a threshold-based presence decision.
package detect

import (
	"math"
	"sort"

	"github.com/vhfscan/monitor/bands"
)

// Result is the occupancy decision and statistics for one channel.
type Result struct {
	CenterMHz    float64
	BandwidthMHz float64
	PowerMedianDB float64
	PowerMaxDB   float64
	SNRDB        float64
	Present      bool
}

// ClosestIndex returns the index in f minimizing |f[i] - target|,
// breaking ties toward the lower index, by linear scan. f need not be
// sorted; the detector calls it against an absolute-frequency vector
// that is monotonic by construction, but the search itself makes no
// such assumption.
func ClosestIndex(f []float64, target float64) int {
	best := 0
	bestDiff := math.Abs(f[0] - target)
	for i := 1; i < len(f); i++ {
		diff := math.Abs(f[i] - target)
		if diff < bestDiff {
			bestDiff = diff
			best = i
		}
	}
	return best
}

// medianLinear returns the median of p[lo:hi+1] (inclusive range)
// without modifying p.
func medianLinear(p []float64, lo, hi int) float64 {
	n := hi - lo + 1
	tmp := make([]float64, n)
	copy(tmp, p[lo:hi+1])
	sort.Float64s(tmp)
	if n%2 == 0 {
		return (tmp[n/2-1] + tmp[n/2]) / 2
	}
	return tmp[n/2]
}

func maxLinear(p []float64, lo, hi int) float64 {
	m := p[lo]
	for i := lo + 1; i <= hi; i++ {
		if p[i] > m {
			m = p[i]
		}
	}
	return m
}

// NoiseFloor returns min(p) over the entire high-resolution PSD.
func NoiseFloor(p []float64) float64 {
	m := p[0]
	for _, v := range p[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// MinDBFloor is substituted for an SNR or power computation that
// would otherwise take log10 of a non-positive value, matching the
// silence scenario's sentinel requirement.
const MinDBFloor = -200

func dB(linear float64) float64 {
	if linear <= 0 {
		return MinDBFloor
	}
	return 10 * math.Log10(linear)
}

// Evaluate computes the occupancy Result for one channel against the
// high-resolution absolute-frequency vector fMHz and linear PSD p
// (equal length), given the pass's noise floor (linear) and presence
// threshold in dB.
func Evaluate(ch bands.Channel, fMHz, p []float64, noiseFloor, thresholdDB float64) Result {
	lowMHz, highMHz := ch.Window()

	iLo := ClosestIndex(fMHz, lowMHz)
	iHi := ClosestIndex(fMHz, highMHz)
	if iLo > iHi {
		iLo, iHi = iHi, iLo
	}
	if iLo < 0 {
		iLo = 0
	}
	if iHi >= len(p) {
		iHi = len(p) - 1
	}

	powerMax := maxLinear(p, iLo, iHi)
	powerMedian := medianLinear(p, iLo, iHi)

	var snrDB float64
	if noiseFloor <= 0 {
		snrDB = MinDBFloor
	} else {
		snrDB = 10 * math.Log10(powerMax/noiseFloor)
	}

	powerMaxDB := dB(powerMax)
	return Result{
		CenterMHz:     ch.CenterMHz,
		BandwidthMHz:  ch.BandwidthMHz,
		PowerMedianDB: dB(powerMedian),
		PowerMaxDB:    powerMaxDB,
		SNRDB:         snrDB,
		Present:       powerMaxDB > thresholdDB,
	}
}

// EvaluateAll evaluates every channel in table against the same PSD
// pass, preserving table order.
func EvaluateAll(table bands.Table, fMHz, p []float64, noiseFloor, thresholdDB float64) []Result {
	out := make([]Result, len(table))
	for i, ch := range table {
		out[i] = Evaluate(ch, fMHz, p, noiseFloor, thresholdDB)
	}
	return out
}
