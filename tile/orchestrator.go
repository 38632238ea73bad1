// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tile

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vhfscan/monitor/radio"
	"github.com/vhfscan/monitor/ring"
	"github.com/vhfscan/monitor/sink"
)

// DefaultSamplesToXferMax is the reference number of IQ samples
// captured per tile (DEFAULT_SAMPLES_TO_XFER_MAX). The per-tile byte
// budget is twice this, 2 * DefaultSamplesToXferMax bytes, i.e. 40 MB.
const DefaultSamplesToXferMax = 20 * 1000 * 1000

// CaptureResult reports the outcome of one tile's acquisition.
type CaptureResult struct {
	TileIndex    int
	Path         string
	BytesWritten uint64
	Drops        uint64
	DroppedBytes uint64
}

// NoBytesError reports that a tile's driver delivered zero bytes,
// per the orchestrator's "no bytes for this tile" failure.
type NoBytesError struct {
	TileIndex int
}

func (e *NoBytesError) Error() string {
	return fmt.Sprintf("tile %d: no bytes received from driver", e.TileIndex)
}

// Orchestrator drives one radio.Device through the acquire step of
// the pipeline for each tile of a Plan. RingSize selects the capture
// mode: zero means the driver callback writes directly into the
// Sample Sink (the reference implementation's simpler mode, safe when
// the disk can keep up with the radio's sustained rate); a positive
// value interposes a Capture Ring drained by a dedicated goroutine.
type Orchestrator struct {
	Device      radio.Device
	SamplesDir  string
	BytesBudget uint64
	RingSize    int
	Gains       radio.Gains

	// Timeout bounds one tile's capture when the radio stalls. Zero
	// disables the bound (not recommended outside tests).
	Timeout time.Duration
}

// pathFor returns the deterministic per-tile sample file path.
func (o *Orchestrator) pathFor(tileIndex int) string {
	return filepath.Join(o.SamplesDir, strconv.Itoa(tileIndex))
}

// RunTile captures one tile's samples to its sample file. It returns
// once the byte budget is reached, ctx is cancelled, or the driver
// reports a fatal configuration error.
func (o *Orchestrator) RunTile(ctx context.Context, tileIndex int, centerHz, sampleRateHz float64) (CaptureResult, error) {
	budget := o.BytesBudget
	if budget == 0 {
		budget = 2 * DefaultSamplesToXferMax
	}

	path := o.pathFor(tileIndex)
	s, err := sink.Open(path, budget, sink.DefaultBufferSize)
	if err != nil {
		return CaptureResult{}, err
	}

	if err := o.Device.Configure(centerHz, sampleRateHz, o.Gains); err != nil {
		s.Close()
		return CaptureResult{}, err
	}

	var (
		r        *ring.Ring
		drainWG  sync.WaitGroup
		drainCtx context.Context
		cancel   context.CancelFunc
	)
	done := make(chan struct{})

	var closeOnce sync.Once
	signalDone := func() {
		closeOnce.Do(func() { close(done) })
	}

	if o.RingSize > 0 {
		// Only the drain goroutine ever touches s once streaming
		// starts, so it alone decides when the budget is reached.
		r = ring.New(o.RingSize)
		drainCtx, cancel = context.WithCancel(context.Background())
		drainWG.Add(1)
		go func() {
			defer drainWG.Done()
			for {
				n, err := r.DrainInto(s)
				if err != nil || s.Done() {
					signalDone()
					return
				}
				if n == 0 {
					select {
					case <-drainCtx.Done():
						return
					case <-time.After(time.Millisecond):
					}
				}
			}
		}()
	}

	cb := func(data []byte, reset bool) {
		if r != nil {
			r.TryPush(data)
			return
		}
		// Direct-write mode: the driver-owned thread is the only
		// writer of s, so checking Done here is race-free.
		if _, err := s.Write(data); err != nil || s.Done() {
			signalDone()
		}
	}

	if err := o.Device.Start(cb); err != nil {
		if cancel != nil {
			cancel()
			drainWG.Wait()
		}
		s.Close()
		return CaptureResult{}, err
	}

	waitCtx := ctx
	var timeoutCancel context.CancelFunc
	if o.Timeout > 0 {
		waitCtx, timeoutCancel = context.WithTimeout(ctx, o.Timeout)
		defer timeoutCancel()
	}

	select {
	case <-done:
	case <-waitCtx.Done():
	}

	stopErr := o.Device.Stop()

	if cancel != nil {
		cancel()
		drainWG.Wait()
		// Drain any final bytes the ring accepted before Stop quiesced
		// the producer.
		for {
			n, err := r.DrainInto(s)
			if err != nil || n == 0 {
				break
			}
		}
	}

	closeErr := s.Close()

	result := CaptureResult{
		TileIndex:    tileIndex,
		Path:         path,
		BytesWritten: s.BytesWritten(),
	}
	if r != nil {
		result.Drops = r.Drops()
		result.DroppedBytes = r.DroppedBytes()
	}

	if stopErr != nil {
		// A failure to stop is logged by the caller and does not
		// override the capture result; the device is already
		// considered force-closed per the Driver Adapter's contract.
		_ = stopErr
	}
	if closeErr != nil {
		return result, closeErr
	}
	if result.BytesWritten == 0 {
		return result, &NoBytesError{TileIndex: tileIndex}
	}
	return result, nil
}
