// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bands implements the Band Table Loader: a CSV reader that
// turns a list of named channel definitions into an ordered, read-only
// table consulted by the Channel Detector once per pass.
package bands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Channel is one row of the band table: a named (center, bandwidth)
// interval that the detector evaluates for occupancy.
type Channel struct {
	CenterMHz    float64
	BandwidthMHz float64
}

// Window returns the channel's [low, high] MHz bounds.
func (c Channel) Window() (low, high float64) {
	half := c.BandwidthMHz / 2
	return c.CenterMHz - half, c.CenterMHz + half
}

// Table is the ordered, read-only sequence of channels loaded for a
// pass. It outlives every tile processed during that pass.
type Table []Channel

// Load parses the band table at path. The file is a UTF-8 CSV with a
// header line followed by rows of center_MHz,bandwidth_MHz using '.'
// as the decimal separator. Blank rows are skipped. The first row
// that fails to parse as two floats truncates the table at that point
// and is reported via the returned error; everything parsed before it
// is still returned.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bands: open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("bands: empty band table")
		}
		return nil, fmt.Errorf("bands: read header: %w", err)
	}

	var table Table
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return table, nil
		}
		row++
		if err != nil {
			return table, &MalformedRowError{Row: row, Reason: err.Error()}
		}
		if isBlankRow(rec) {
			continue
		}
		if len(rec) < 2 {
			return table, &MalformedRowError{Row: row, Reason: fmt.Sprintf("expected 2 columns, got %d", len(rec))}
		}
		center, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return table, &MalformedRowError{Row: row, Reason: fmt.Sprintf("center_MHz: %v", err)}
		}
		bw, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return table, &MalformedRowError{Row: row, Reason: fmt.Sprintf("bandwidth_MHz: %v", err)}
		}
		table = append(table, Channel{CenterMHz: center, BandwidthMHz: bw})
	}
}

func isBlankRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// MalformedRowError reports that the band table was truncated at Row
// (1-based, counting from the first row after the header) because it
// could not be parsed.
type MalformedRowError struct {
	Row    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("bands: malformed row %d: %s", e.Row, e.Reason)
}
