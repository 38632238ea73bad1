// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package radio

import (
	"fmt"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// VendorDLLPath is the fallback absolute path used to load the vendor
// front-end library when normal Windows library path resolution
// (current directory, executable directory, PATH) does not find it.
// It is architecture-specific the same way a vendor installer's
// default install location would be.
var VendorDLLPath = `C:\Program Files\VHFScan\vhf_frontend.dll`

// proc is implemented by both windows.LazyProc and windows.Proc, so
// VendorDevice can use whichever loading strategy init succeeded with
// without caring which one it got.
type proc interface {
	Call(a ...uintptr) (r1, r2 uintptr, lastErr error)
}

var (
	vhfOpen      proc
	vhfConfigure proc
	vhfStart     proc
	vhfStop      proc
	vhfClose     proc
)

func init() {
	lazy := windows.NewLazyDLL("vhf_frontend")
	newProc := func(name string) proc {
		return lazy.NewProc(name)
	}
	if err := lazy.Load(); err != nil {
		if !filepath.IsAbs(VendorDLLPath) {
			panic(fmt.Sprintf("radio: VendorDLLPath is not absolute, refusing to load: %s", VendorDLLPath))
		}
		direct, err := windows.LoadDLL(VendorDLLPath)
		if err != nil {
			panic(fmt.Sprintf("radio: vhf_frontend.dll not found in Path or %s", VendorDLLPath))
		}
		newProc = func(name string) proc {
			// Ignore the error deliberately: an unresolved Proc simply
			// panics on first Call, which is the same failure mode as
			// a lazy DLL that is missing the export.
			p, _ := direct.FindProc(name)
			return p
		}
	}

	vhfOpen = newProc("vhf_open")
	vhfConfigure = newProc("vhf_configure")
	vhfStart = newProc("vhf_start")
	vhfStop = newProc("vhf_stop")
	vhfClose = newProc("vhf_close")
}

// vendorCallback is the static trampoline the DLL invokes from its own
// streaming thread. It is wrapped once with windows.NewCallback so the
// Go runtime can be entered safely from C calling conventions, and
// dispatches to whichever VendorDevice currently owns the stream.
var vendorCallbackWin = windows.NewCallback(vendorCallback)

var (
	activeMu     sync.Mutex
	activeDevice *VendorDevice
)

func vendorCallback(dataPtr, length, reset uintptr) uintptr {
	activeMu.Lock()
	d := activeDevice
	activeMu.Unlock()
	if d == nil || d.cb == nil {
		return 0
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(dataPtr)), int(length))
	d.cb(buf, reset != 0)
	return 0
}

// VendorDevice is a Device backed by a vendor-supplied front-end DLL,
// loaded dynamically the same way a vendor SDK would be wrapped: by
// name through the normal Windows search path, falling back to a
// fixed absolute install location. It is compiled only on windows and
// is never the default Device; callers opt into it explicitly when
// running against real hardware.
type VendorDevice struct {
	handle uintptr
	cb     StreamCallback
}

var _ Device = (*VendorDevice)(nil)

// OpenVendorDevice opens the front-end library and returns a Device
// backed by it.
func OpenVendorDevice() (*VendorDevice, error) {
	h, _, lastErr := vhfOpen.Call()
	if h == 0 {
		return nil, fmt.Errorf("radio: vendor open: %w", lastErr)
	}
	return &VendorDevice{handle: h}, nil
}

// Configure implements Device.
func (d *VendorDevice) Configure(centerHz, sampleRateHz float64, gains Gains) error {
	agc := uintptr(0)
	if gains.AGC {
		agc = 1
	}
	r, _, lastErr := vhfConfigure.Call(
		d.handle,
		uintptr(unsafe.Pointer(&centerHz)),
		uintptr(unsafe.Pointer(&sampleRateHz)),
		uintptr(unsafe.Pointer(&gains.LNAGainDB)),
		uintptr(unsafe.Pointer(&gains.IFGainDB)),
		agc,
	)
	if r != 0 {
		return &ConfigError{CenterHz: centerHz, SampleRateHz: sampleRateHz, Reason: lastErr.Error()}
	}
	return nil
}

// Start implements Device.
func (d *VendorDevice) Start(cb StreamCallback) error {
	d.cb = cb
	activeMu.Lock()
	activeDevice = d
	activeMu.Unlock()

	r, _, lastErr := vhfStart.Call(d.handle, vendorCallbackWin)
	if r != 0 {
		return fmt.Errorf("radio: vendor start: %w", lastErr)
	}
	return nil
}

// Stop implements Device.
func (d *VendorDevice) Stop() error {
	r, _, lastErr := vhfStop.Call(d.handle)
	activeMu.Lock()
	if activeDevice == d {
		activeDevice = nil
	}
	activeMu.Unlock()
	if r != 0 {
		return fmt.Errorf("radio: vendor stop: %w", lastErr)
	}
	return nil
}

// Close implements Device.
func (d *VendorDevice) Close() error {
	r, _, lastErr := vhfClose.Call(d.handle)
	if r != 0 {
		return fmt.Errorf("radio: vendor close: %w", lastErr)
	}
	return nil
}
