// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package monitor is the top-level package of the VHF spectrum monitor
module. See radio for the SDR Driver Adapter contract, tile for the
frequency plan and capture orchestration, psd for the Welch PSD
engine, detect for channel occupancy, and result for the JSON
document encoder. cmd/vhfscand wires them into the full pipeline.
*/
package monitor
