// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package radio

// GainOption configures a Gains value. It follows the same
// functional-option shape as a vendor SDK's per-channel configuration
// functions, generalized away from any particular chip's gain-state
// tables.
type GainOption func(*Gains)

// WithAGC enables or disables automatic gain control.
func WithAGC(enabled bool) GainOption {
	return func(g *Gains) {
		g.AGC = enabled
	}
}

// WithLNAGain sets a fixed LNA/attenuation stage gain in dB. It has no
// effect while AGC is enabled.
func WithLNAGain(db float64) GainOption {
	return func(g *Gains) {
		g.LNAGainDB = db
	}
}

// WithIFGain sets a fixed IF/baseband gain stage in dB. It has no
// effect while AGC is enabled.
func WithIFGain(db float64) GainOption {
	return func(g *Gains) {
		g.IFGainDB = db
	}
}

// NewGains builds a Gains value by applying each option in order.
func NewGains(opts ...GainOption) Gains {
	var g Gains
	for _, opt := range opts {
		opt(&g)
	}
	return g
}
