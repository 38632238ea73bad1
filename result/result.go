// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package result implements the Result Encoder: assembly of a tile's
// metadata, PSD vectors, and per-channel detector results into the
// JSON document consumed by the visualizer, and its atomic write to
// disk.
package result

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/vhfscan/monitor/detect"
)

// Channel mirrors detect.Result in the document's wire shape. Fields
// are named to match the visualizer's existing contract rather than
// this module's internal naming.
type Channel struct {
	CenterMHz     float64 `json:"center_MHz"`
	BandwidthMHz  float64 `json:"bandwidth_MHz"`
	PowerMedianDB float64 `json:"power_median_dB"`
	PowerMaxDB    float64 `json:"power_max_dB"`
	SNRDB         float64 `json:"snr_dB"`
	Present       bool    `json:"present"`
}

// Vectors holds the frequency and PSD arrays at the visualizer's
// resolution.
type Vectors struct {
	F   []float64 `json:"f"`
	Pxx []float64 `json:"Pxx"`
}

// Data is the inner "data" object of the document.
type Data struct {
	Band       string    `json:"band"`
	FMin       string    `json:"fmin"`
	FMax       string    `json:"fmax"`
	Units      string    `json:"units"`
	Measure    string    `json:"measure"`
	Vectors    Vectors   `json:"vectors"`
	Parameters []Channel `json:"parameters"`
}

// Document is the top-level JSON object written for each tile.
type Document struct {
	Data Data `json:"data"`
}

// ErrorDocument is written in place of a Document when a tile's
// analysis failed, so that a consistent shape is always present at
// the tile's JSON path.
type ErrorDocument struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// round3 rounds v to three decimal places, matching the reference
// encoder's snprintf("%.3f") plus atof round-trip.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// round3All returns a new slice with every value rounded to three
// decimal places.
func round3All(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = round3(x)
	}
	return out
}

// BuildDocument assembles a Document from a tile's post-processed PSD
// vectors (fMHz and psdDB, at the visualizer's resolution) and the
// Channel Detector's per-channel results.
func BuildDocument(fMHz, psdDB []float64, channels []detect.Result) Document {
	params := make([]Channel, len(channels))
	for i, c := range channels {
		params[i] = Channel{
			CenterMHz:     round3(c.CenterMHz),
			BandwidthMHz:  round3(c.BandwidthMHz),
			PowerMedianDB: round3(c.PowerMedianDB),
			PowerMaxDB:    round3(c.PowerMaxDB),
			SNRDB:         round3(c.SNRDB),
			Present:       c.Present,
		}
	}
	return Document{
		Data: Data{
			Band:    "VHF",
			FMin:    "88",
			FMax:    "108",
			Units:   "MHz",
			Measure: "RMER",
			Vectors: Vectors{
				F:   round3All(fMHz),
				Pxx: round3All(psdDB),
			},
			Parameters: params,
		},
	}
}

// WriteAtomic marshals v to path, writing to a temporary file in the
// same directory first and renaming over path, so a reader never
// observes a partial write. If path already exists it is replaced.
func WriteAtomic(path string, v interface{}) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("result: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("result: encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("result: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("result: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("result: rename: %w", err)
	}
	return nil
}
