// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package cmd contains the command-line applications built on top of the
VHF spectrum monitor module: vhfscand, the full acquisition-and-analysis
pipeline, and vhfdetect, a diagnostic that prints the resolved
frequency plan and band table.
*/
package cmd
