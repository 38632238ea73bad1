// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides opt-in, low-overhead Prometheus telemetry
// for the acquisition and analysis pipeline. It is safe to call from
// the driver's hot path: when disabled, every exported function is a
// no-op.
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var enabled atomic.Bool

var (
	ringDropsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vhfscan_ring_drops_total",
		Help: "Total number of capture ring packets dropped for lack of free space",
	})
	ringDroppedBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vhfscan_ring_dropped_bytes_total",
		Help: "Total number of bytes dropped by the capture ring",
	})
	tileBytesWrittenTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vhfscan_tile_bytes_written_total",
		Help: "Total bytes persisted to tile sample files across all tiles",
	})
	tileProcessingSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vhfscan_tile_processing_seconds",
		Help:    "Wall-clock duration of one tile's analysis pass (load, PSD, detect, encode)",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	channelsPresentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vhfscan_channels_present_total",
		Help: "Total channel-pass evaluations that decided present=true",
	})
)

func init() {
	prometheus.MustRegister(
		ringDropsTotal,
		ringDroppedBytesTotal,
		tileBytesWrittenTotal,
		tileProcessingSeconds,
		channelsPresentTotal,
	)
}

// Enable turns on metrics recording. Call once at startup; safe to
// call more than once.
func Enable() {
	enabled.Store(true)
}

// Disable turns off metrics recording; subsequent recorder calls
// become no-ops again.
func Disable() {
	enabled.Store(false)
}

// Enabled reports whether metrics recording is currently active.
func Enabled() bool {
	return enabled.Load()
}

// RecordRingDrop records one dropped packet of droppedBytes bytes.
func RecordRingDrop(droppedBytes uint64) {
	if !enabled.Load() {
		return
	}
	ringDropsTotal.Inc()
	ringDroppedBytesTotal.Add(float64(droppedBytes))
}

// RecordTileBytesWritten records bytes persisted for one tile.
func RecordTileBytesWritten(n uint64) {
	if !enabled.Load() {
		return
	}
	tileBytesWrittenTotal.Add(float64(n))
}

// RecordTileProcessingSeconds records one tile's analysis duration.
func RecordTileProcessingSeconds(seconds float64) {
	if !enabled.Load() {
		return
	}
	tileProcessingSeconds.Observe(seconds)
}

// RecordChannelPresent records one channel-pass evaluation that
// decided the channel was occupied.
func RecordChannelPresent() {
	if !enabled.Load() {
		return
	}
	channelsPresentTotal.Inc()
}

// Handler returns the promhttp handler serving /metrics, for callers
// that want to mount it on their own mux.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ListenAndServe starts a dedicated metrics HTTP server at addr
// serving /metrics. It blocks; callers typically run it in a
// goroutine. A non-nil error other than http.ErrServerClosed is
// unexpected and should be logged by the caller.
func ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
