// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bands

import (
	"math"
	"strings"
	"testing"
)

func TestParseOrdersRowsAndSkipsBlanks(t *testing.T) {
	t.Parallel()

	in := "center_MHz,bandwidth_MHz\n" +
		"88.5,0.2\n" +
		"\n" +
		"100.3,0.2\n" +
		" , \n" +
		"107.9,0.2\n"

	table, err := parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Table{
		{CenterMHz: 88.5, BandwidthMHz: 0.2},
		{CenterMHz: 100.3, BandwidthMHz: 0.2},
		{CenterMHz: 107.9, BandwidthMHz: 0.2},
	}
	if len(table) != len(want) {
		t.Fatalf("got %d channels, want %d", len(table), len(want))
	}
	for i := range want {
		if table[i] != want[i] {
			t.Errorf("row %d: got %+v, want %+v", i, table[i], want[i])
		}
	}
}

func TestParseTruncatesOnMalformedRow(t *testing.T) {
	t.Parallel()

	in := "center_MHz,bandwidth_MHz\n" +
		"88.5,0.2\n" +
		"not-a-number,0.2\n" +
		"107.9,0.2\n"

	table, err := parse(strings.NewReader(in))
	if err == nil {
		t.Fatalf("expected an error for the malformed row")
	}
	var rowErr *MalformedRowError
	re, ok := err.(*MalformedRowError)
	if !ok {
		t.Fatalf("expected *MalformedRowError, got %T", err)
	}
	rowErr = re
	if rowErr.Row != 2 {
		t.Errorf("Row = %d, want 2", rowErr.Row)
	}
	if len(table) != 1 {
		t.Fatalf("expected the table truncated to 1 row before the bad one, got %d", len(table))
	}
	if table[0].CenterMHz != 88.5 {
		t.Errorf("surviving row = %+v, want center 88.5", table[0])
	}
}

func TestParseEmptyTableIsAnError(t *testing.T) {
	t.Parallel()
	if _, err := parse(strings.NewReader("")); err == nil {
		t.Fatalf("expected an error for a table with no header")
	}
}

func TestParseZeroRowsAfterHeader(t *testing.T) {
	t.Parallel()
	table, err := parse(strings.NewReader("center_MHz,bandwidth_MHz\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("expected zero rows, got %d", len(table))
	}
}

func TestChannelWindow(t *testing.T) {
	t.Parallel()
	c := Channel{CenterMHz: 100.3, BandwidthMHz: 0.2}
	low, high := c.Window()
	if math.Abs(low-100.2) > 1e-9 || math.Abs(high-100.4) > 1e-9 {
		t.Errorf("Window() = (%v, %v), want (100.2, 100.4)", low, high)
	}
}
