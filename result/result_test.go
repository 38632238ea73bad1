// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package result

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/vhfscan/monitor/detect"
)

func TestBuildDocumentEmptyParameters(t *testing.T) {
	t.Parallel()
	f := []float64{88.0, 98.0, 108.0}
	p := []float64{-90.12345, -80.5, -70.0}
	doc := BuildDocument(f, p, nil)

	if len(doc.Data.Parameters) != 0 {
		t.Errorf("expected empty parameters, got %v", doc.Data.Parameters)
	}
	if doc.Data.Band != "VHF" || doc.Data.FMin != "88" || doc.Data.FMax != "108" {
		t.Errorf("unexpected metadata: %+v", doc.Data)
	}
	if len(doc.Data.Vectors.F) != len(doc.Data.Vectors.Pxx) {
		t.Fatalf("vector length mismatch: f=%d pxx=%d", len(doc.Data.Vectors.F), len(doc.Data.Vectors.Pxx))
	}
}

func TestBuildDocumentRoundsToThreeDecimals(t *testing.T) {
	t.Parallel()
	f := []float64{88.123456}
	p := []float64{-90.987654}
	doc := BuildDocument(f, p, nil)

	if doc.Data.Vectors.F[0] != 88.123 {
		t.Errorf("F[0] = %v, want 88.123", doc.Data.Vectors.F[0])
	}
	if doc.Data.Vectors.Pxx[0] != -90.988 {
		t.Errorf("Pxx[0] = %v, want -90.988", doc.Data.Vectors.Pxx[0])
	}
}

func TestBuildDocumentCarriesChannelResults(t *testing.T) {
	t.Parallel()
	ch := []detect.Result{
		{CenterMHz: 100.3, BandwidthMHz: 0.2, PowerMedianDB: -60.1234, PowerMaxDB: -20.5, SNRDB: 39.5, Present: true},
	}
	doc := BuildDocument([]float64{98}, []float64{-80}, ch)
	if len(doc.Data.Parameters) != 1 {
		t.Fatalf("expected 1 channel result")
	}
	got := doc.Data.Parameters[0]
	if !got.Present {
		t.Errorf("expected Present=true")
	}
	if got.PowerMedianDB != -60.123 {
		t.Errorf("PowerMedianDB = %v, want -60.123", got.PowerMedianDB)
	}
}

func everyFloatHasAtMostThreeDecimals(t *testing.T, raw []byte) {
	t.Helper()
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	data := generic["data"].(map[string]interface{})
	vectors := data["vectors"].(map[string]interface{})
	for _, key := range []string{"f", "Pxx"} {
		for _, v := range vectors[key].([]interface{}) {
			s := strconv.FormatFloat(v.(float64), 'f', -1, 64)
			if dot := strings.IndexByte(s, '.'); dot >= 0 {
				if len(s)-dot-1 > 3 {
					t.Errorf("%s value %s has more than 3 decimal digits", key, s)
				}
			}
		}
	}
}

func TestWriteAtomicProducesValidJSONFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "0")

	doc := BuildDocument([]float64{88.0, 98.0}, []float64{-90.0, -80.0}, nil)
	if err := WriteAtomic(path, doc); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	everyFloatHasAtMostThreeDecimals(t, raw)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestWriteAtomicOverwritesExisting(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "0")

	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc := BuildDocument([]float64{88.0}, []float64{-90.0}, nil)
	if err := WriteAtomic(path, doc); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(raw), "stale") {
		t.Errorf("expected overwritten content, got: %s", raw)
	}
}

func TestErrorDocumentShape(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "3")

	doc := ErrorDocument{Error: "FormatError", Detail: "odd file size"}
	if err := WriteAtomic(path, doc); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got ErrorDocument
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != doc {
		t.Errorf("got %+v, want %+v", got, doc)
	}
}
