// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring implements the capture ring buffer that sits between a
// radio driver's streaming callback (the producer) and a Sample Sink
// (the consumer). It is a bounded, lock-free single-producer/
// single-consumer byte ring: the producer never blocks, and on
// insufficient free space it drops the incoming packet and counts it
// instead of overwriting unread data.
package ring

import "sync/atomic"

// Ring is a fixed-size byte ring buffer shared between exactly one
// producer (TryPush) and exactly one consumer (DrainInto). The zero
// value is not usable; construct with New.
//
// head and tail are monotonically advancing offsets interpreted modulo
// len(buf). The producer publishes head with a release store after a
// copy completes; the consumer publishes tail with a release store
// after a copy completes. The one unused slot (len(buf)-1 usable bytes)
// distinguishes a full ring from an empty one.
type Ring struct {
	buf  []byte
	head atomic.Uint64 // write offset, producer-owned
	tail atomic.Uint64 // read offset, consumer-owned

	dropPkts  atomic.Uint64
	dropBytes atomic.Uint64
	accepted  atomic.Uint64 // bytes accepted by TryPush, drained or not
	drained   atomic.Uint64 // bytes consumed out via DrainInto
}

// New creates a Ring with the given capacity in bytes. Capacity is the
// usable byte count; the underlying buffer reserves one extra slot to
// distinguish full from empty. A power-of-two size is recommended but
// not required.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]byte, capacity+1)}
}

// Cap returns the usable capacity in bytes.
func (r *Ring) Cap() int {
	return len(r.buf) - 1
}

// free returns the number of bytes currently available to write,
// computed from a snapshot of head and tail. Only valid when called by
// the producer, which owns head and only needs an up-to-date tail.
func (r *Ring) free(head, tail uint64) int {
	size := uint64(len(r.buf))
	return int(size - 1 - (head - tail))
}

// TryPush attempts to copy src into the ring. If there is insufficient
// free space for the whole of src, nothing is written, the drop
// counter is incremented, and ok is false. TryPush must only be called
// by the single producer (e.g. the driver's streaming callback) and
// must never block or allocate.
func (r *Ring) TryPush(src []byte) (ok bool) {
	if len(src) == 0 {
		return true
	}
	size := uint64(len(r.buf))
	head := r.head.Load()
	tail := r.tail.Load()

	if r.free(head, tail) < len(src) {
		r.dropPkts.Add(1)
		r.dropBytes.Add(uint64(len(src)))
		return false
	}

	start := head % size
	n := uint64(len(src))
	if start+n <= size {
		copy(r.buf[start:start+n], src)
	} else {
		first := size - start
		copy(r.buf[start:], src[:first])
		copy(r.buf[:n-first], src[first:])
	}

	// Publish head only after the copy is fully visible.
	r.head.Store(head + n)
	r.accepted.Add(n)
	return true
}

// Sink is implemented by a consumer able to accept a contiguous slice
// of ring bytes. DrainInto may call Write more than once per call if
// the available bytes wrap the end of the underlying buffer.
type Sink interface {
	Write(p []byte) (n int, err error)
}

// DrainInto copies all bytes currently available in the ring into
// sink, in one or two Write calls (the wrap case), and advances tail.
// It returns the number of bytes written and the first error from
// sink, if any. On a partial write (n < requested, err == nil) or
// error, DrainInto stops and only advances tail by the bytes actually
// consumed, so no data is lost on a future call. DrainInto must only
// be called by the single consumer.
func (r *Ring) DrainInto(sink Sink) (int, error) {
	size := uint64(len(r.buf))
	tail := r.tail.Load()
	head := r.head.Load()

	avail := head - tail
	if avail == 0 {
		return 0, nil
	}

	start := tail % size
	var total int
	if start+avail <= size {
		n, err := sink.Write(r.buf[start : start+avail])
		total += n
		r.tail.Store(tail + uint64(n))
		r.drained.Add(uint64(n))
		return total, err
	}

	first := size - start
	n, err := sink.Write(r.buf[start : start+first])
	total += n
	r.tail.Store(tail + uint64(n))
	r.drained.Add(uint64(n))
	if err != nil || uint64(n) < first {
		return total, err
	}

	n2, err := sink.Write(r.buf[:avail-first])
	total += n2
	r.tail.Store(tail + first + uint64(n2))
	r.drained.Add(uint64(n2))
	return total, err
}

// Drops returns the number of packets dropped due to insufficient free
// space since the Ring was created.
func (r *Ring) Drops() uint64 {
	return r.dropPkts.Load()
}

// DroppedBytes returns the total number of bytes discarded across all
// dropped packets. Together with Delivered and BytesInFlight this
// satisfies DroppedBytes+BytesInFlight+Delivered == total bytes
// received by the producer.
func (r *Ring) DroppedBytes() uint64 {
	return r.dropBytes.Load()
}

// BytesInFlight returns the number of bytes currently buffered but not
// yet drained.
func (r *Ring) BytesInFlight() uint64 {
	return r.head.Load() - r.tail.Load()
}

// Delivered returns the total number of bytes that have been drained
// out of the ring via DrainInto.
func (r *Ring) Delivered() uint64 {
	return r.drained.Load()
}
