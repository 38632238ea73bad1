// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !windows

package webfront

import "syscall"

// signalTerminate is the signal sent to ask the visualizer process to
// shut down gracefully, mirroring the reference's SIGTERM.
const signalTerminate = syscall.SIGTERM
