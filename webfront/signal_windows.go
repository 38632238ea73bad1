// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package webfront

import "os"

// signalTerminate is the signal sent to ask the visualizer process to
// shut down. os.Process.Signal on Windows only supports os.Kill, so
// there is no graceful-shutdown equivalent of SIGTERM available here.
const signalTerminate = os.Kill
