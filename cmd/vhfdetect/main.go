// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vhfscan/monitor/bands"
	"github.com/vhfscan/monitor/config"
	"github.com/vhfscan/monitor/helpers/parse"
	"github.com/vhfscan/monitor/tile"
)

func main() {
	flags := flag.NewFlagSet("vhfdetect", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: vhfdetect [FLAGS]

vhfdetect resolves the current configuration and band table and prints
the computed frequency plan and channel list, without acquiring any
samples or touching the radio.

Flags:
`,
		))
		flags.PrintDefaults()
	}
	floOpt := flags.String("flo", "88M", "Low edge of the scanned range.")
	fhiOpt := flags.String("fhi", "108M", "High edge of the scanned range.")
	srOpt := flags.String("sr", "20M", "Radio sample rate (tile width).")

	_ = flags.Parse(os.Args[1:])
	if flags.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "too many arguments provided")
		flags.Usage()
		os.Exit(1)
	}

	flo, err := parse.ParseBandEdge(*floOpt)
	if err != nil {
		log.Fatalf("flo: %v", err)
	}
	fhi, err := parse.ParseBandEdge(*fhiOpt)
	if err != nil {
		log.Fatalf("fhi: %v", err)
	}
	sr, err := parse.ParseSampleRate(*srOpt)
	if err != nil {
		log.Fatalf("sr: %v", err)
	}

	paths, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	table, err := bands.Load(paths.CoreBandsPath)
	var malformed *bands.MalformedRowError
	switch {
	case err != nil && errors.As(err, &malformed):
		fmt.Fprintf(os.Stderr, "band table truncated at row %d: %v\n", malformed.Row, malformed.Reason)
	case err != nil:
		log.Fatal(err)
	}

	plan := tile.NewPlan(flo, fhi, sr)
	fmt.Printf("%d tiles, %.0f Hz wide\n", plan.NumTiles(), plan.SampleRateHz)
	for k, centerHz := range plan.Centers {
		fmt.Printf("  tile %d: center=%.0f Hz\n", k, centerHz)
	}

	fmt.Printf("%d channels\n", len(table))
	for _, ch := range table {
		low, high := ch.Window()
		fmt.Printf("  %.3f MHz (bw=%.3f MHz, window=[%.3f,%.3f])\n", ch.CenterMHz, ch.BandwidthMHz, low, high)
	}
}
