// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import (
	"bytes"
	"testing"
)

func TestTryPushDrainInto(t *testing.T) {
	t.Parallel()

	r := New(16)
	if !r.TryPush([]byte("hello")) {
		t.Fatalf("TryPush failed unexpectedly")
	}
	if !r.TryPush([]byte(" worl")) {
		t.Fatalf("TryPush failed unexpectedly")
	}

	var out bytes.Buffer
	n, err := r.DrainInto(&out)
	if err != nil {
		t.Fatalf("DrainInto: %v", err)
	}
	if n != len("hello worl") {
		t.Errorf("wrong byte count: got %d, want %d", n, len("hello worl"))
	}
	if out.String() != "hello worl" {
		t.Errorf("wrong bytes: got %q, want %q", out.String(), "hello worl")
	}
	if r.BytesInFlight() != 0 {
		t.Errorf("expected empty ring after drain: got %d in flight", r.BytesInFlight())
	}
}

func TestTryPushWrap(t *testing.T) {
	t.Parallel()

	r := New(8)
	if !r.TryPush([]byte("123456")) {
		t.Fatalf("TryPush failed unexpectedly")
	}
	var out bytes.Buffer
	if _, err := r.DrainInto(&out); err != nil {
		t.Fatalf("DrainInto: %v", err)
	}
	out.Reset()

	// head and tail are now both at 6 mod 9; the next push should wrap.
	if !r.TryPush([]byte("abcdef")) {
		t.Fatalf("TryPush failed unexpectedly")
	}
	if _, err := r.DrainInto(&out); err != nil {
		t.Fatalf("DrainInto: %v", err)
	}
	if out.String() != "abcdef" {
		t.Errorf("wrap produced wrong bytes: got %q, want %q", out.String(), "abcdef")
	}
}

func TestTryPushDropsOnOverflow(t *testing.T) {
	t.Parallel()

	const capacity = 8
	r := New(capacity)

	// Push exactly twice the capacity instantaneously, as a producer would
	// if a consumer fell behind.
	packet := bytes.Repeat([]byte{0xAA}, capacity)
	ok1 := r.TryPush(packet)
	ok2 := r.TryPush(packet)

	if !ok1 {
		t.Fatalf("first push of exactly capacity bytes should succeed")
	}
	if ok2 {
		t.Fatalf("second push should have been dropped")
	}
	if r.Drops() != 1 {
		t.Errorf("wrong drop count: got %d, want 1", r.Drops())
	}
	if r.DroppedBytes() != capacity {
		t.Errorf("wrong dropped byte count: got %d, want %d", r.DroppedBytes(), capacity)
	}

	var out bytes.Buffer
	n, err := r.DrainInto(&out)
	if err != nil {
		t.Fatalf("DrainInto: %v", err)
	}
	if n != capacity {
		t.Errorf("consumer should see exactly capacity bytes: got %d, want %d", n, capacity)
	}
	if !bytes.Equal(out.Bytes(), packet) {
		t.Errorf("delivered bytes corrupted")
	}

	total := r.DroppedBytes() + r.BytesInFlight() + r.Delivered()
	if total != uint64(2*capacity) {
		t.Errorf("accounting invariant broken: dropped+inflight+delivered=%d, want %d", total, 2*capacity)
	}
}

func TestTryPushRejectsOversizedPacket(t *testing.T) {
	t.Parallel()

	r := New(4)
	if r.TryPush([]byte("12345")) {
		t.Fatalf("push larger than capacity should be dropped")
	}
	if r.Drops() != 1 {
		t.Errorf("wrong drop count: got %d, want 1", r.Drops())
	}
}

func TestDrainIntoEmpty(t *testing.T) {
	t.Parallel()

	r := New(16)
	var out bytes.Buffer
	n, err := r.DrainInto(&out)
	if err != nil || n != 0 {
		t.Errorf("drain of empty ring: got (%d, %v), want (0, nil)", n, err)
	}
}
