// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordersAreNoOpsWhenDisabled(t *testing.T) {
	Disable()
	before := counterValue(t, ringDropsTotal)
	RecordRingDrop(128)
	after := counterValue(t, ringDropsTotal)
	if before != after {
		t.Errorf("expected no change while disabled: before=%v after=%v", before, after)
	}
}

func TestRecordersUpdateMetricsWhenEnabled(t *testing.T) {
	Enable()
	defer Disable()

	before := counterValue(t, ringDropsTotal)
	RecordRingDrop(64)
	after := counterValue(t, ringDropsTotal)
	if after != before+1 {
		t.Errorf("ringDropsTotal = %v, want %v", after, before+1)
	}
}

func TestEnableDisableToggle(t *testing.T) {
	Disable()
	if Enabled() {
		t.Fatalf("expected disabled")
	}
	Enable()
	if !Enabled() {
		t.Fatalf("expected enabled")
	}
	Disable()
}
