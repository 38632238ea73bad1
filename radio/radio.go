// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package radio defines the SDR Driver Adapter contract used by the
// Tile Orchestrator and provides a deterministic Simulator backend
// used for tests and for running the pipeline without hardware
// attached. A real front-end is expected to implement Device the same
// way a vendor library would be wrapped: Configure/Start/Stop/Close,
// with StreamCallback invoked from a driver-owned thread that must
// never block or allocate on the hot path.
package radio

import "fmt"

// Gains bundles the gain-stage settings passed to Configure. The
// fields are intentionally generic (as opposed to a specific vendor's
// LNA-state tables) so that any front-end can implement Device without
// this package knowing its gain taxonomy.
type Gains struct {
	// LNAGainDB requests a front-end LNA/attenuation stage gain
	// relative to the vendor's own reference, in dB.
	LNAGainDB float64
	// IFGainDB requests an IF/baseband gain stage setting in dB.
	IFGainDB float64
	// AGC enables the device's automatic gain control, if supported.
	// When true, LNAGainDB and IFGainDB are advisory only.
	AGC bool
}

// StreamCallback is invoked from a driver-owned thread for each block
// of raw baseband bytes the front-end produces. It MUST be
// non-blocking and MUST NOT allocate or perform file I/O: the only
// safe action is to hand the bytes to a ring.Ring via TryPush. The
// tile Orchestrator's direct-write mode (RingSize zero) is the one
// exception: its callback writes into the buffered Sample Sink.
//
// reset is true when the device signals that the sample stream has
// been reset (e.g. after a retune), which callers use to invalidate
// any drop-detection state that spans calls.
type StreamCallback func(data []byte, reset bool)

// Device is the SDR Driver Adapter contract (spec component A). An
// implementation owns exactly one physical or simulated radio.
// Configure must be called before Start; Start/Stop may be called at
// most once per Configure. Close releases any resources held by the
// device and makes it unusable.
type Device interface {
	// Configure sets the tuned center frequency, sample rate, and gain
	// stage for the next Start call. It returns an error if the
	// device cannot be configured to these parameters (device
	// missing, busy, or the parameters are out of range); such an
	// error is fatal for the current tile.
	Configure(centerHz, sampleRateHz float64, gains Gains) error

	// Start begins streaming. cb is called from a driver-owned thread
	// for each buffer of raw bytes until Stop is called or the
	// device encounters a fatal error.
	Start(cb StreamCallback) error

	// Stop halts streaming. A failure to stop is not fatal: callers
	// should log it and force-close the device.
	Stop() error

	// Close releases the device. Safe to call after a failed Stop.
	Close() error
}

// ConfigError reports that a Device could not be configured to the
// requested parameters. It is always fatal for the current tile, per
// the Driver Adapter's failure semantics.
type ConfigError struct {
	CenterHz     float64
	SampleRateHz float64
	Reason       string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("radio: configure center=%.0fHz rate=%.0fHz: %s", e.CenterHz, e.SampleRateHz, e.Reason)
}
