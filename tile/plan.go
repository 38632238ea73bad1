// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tile implements the frequency-plan computation and the Tile
// Orchestrator: the per-tile state machine that drives a radio.Device
// through configure/start/capture/stop/close, and the signal-driven
// shutdown that can interrupt it mid-tile.
package tile

import "math"

// Plan is an ordered sequence of tile center frequencies covering
// [loHz, hiHz] with tiles sampleRateHz wide.
type Plan struct {
	SampleRateHz float64
	Centers      []float64
}

// NewPlan computes the frequency plan: num_tiles = ceil((hi-lo)/SR),
// and tile k is centered at f_lo + (k+0.5)*SR.
func NewPlan(loHz, hiHz, sampleRateHz float64) Plan {
	span := hiHz - loHz
	n := int(math.Ceil(span / sampleRateHz))
	if n < 1 {
		n = 1
	}
	centers := make([]float64, n)
	for k := 0; k < n; k++ {
		centers[k] = loHz + (float64(k)+0.5)*sampleRateHz
	}
	return Plan{SampleRateHz: sampleRateHz, Centers: centers}
}

// NumTiles returns the number of tiles in the plan.
func (p Plan) NumTiles() int {
	return len(p.Centers)
}
