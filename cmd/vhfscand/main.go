// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/vhfscan/monitor/bands"
	"github.com/vhfscan/monitor/config"
	"github.com/vhfscan/monitor/detect"
	"github.com/vhfscan/monitor/helpers/parse"
	"github.com/vhfscan/monitor/iq"
	"github.com/vhfscan/monitor/metrics"
	"github.com/vhfscan/monitor/psd"
	"github.com/vhfscan/monitor/radio"
	"github.com/vhfscan/monitor/result"
	"github.com/vhfscan/monitor/tile"
	"github.com/vhfscan/monitor/webfront"
)

// reference scan parameters (spec's "reference configuration").
const (
	defaultFLoHz       = 88e6
	defaultFHiHz       = 108e6
	defaultSampleRate  = 20e6
	segmentLengthLarge = 32768
	segmentLengthSmall = 4096
	defaultThresholdDB = -30
)

func vhfscand() error {
	flags := flag.NewFlagSet("vhfscand", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), strings.TrimSpace(`
Usage: vhfscand [FLAGS]

vhfscand tunes an SDR front-end across a contiguous frequency range in
tiles, captures raw baseband samples for each tile, and writes a
calibrated power spectral density estimate and per-channel occupancy
decisions as a JSON document per tile.

Flags:
`,
		))
		flags.PrintDefaults()
	}
	floOpt := flags.String("flo", "88M", "Low edge of the scanned range.")
	fhiOpt := flags.String("fhi", "108M", "High edge of the scanned range.")
	srOpt := flags.String("sr", "20M", "Radio sample rate (tile width).")
	thresholdOpt := flags.Float64("threshold", defaultThresholdDB, "Presence decision threshold in dB.")
	metricsAddrOpt := flags.String("metrics", "", "If set, serve Prometheus metrics at this address (e.g. :9090).")
	webOpt := flags.Bool("web", false, "Launch the external visualizer front-end alongside the scan.")
	replayOpt := flags.String("replay", "", "Replay previously captured tile files from this directory instead of driving the radio.")
	verboseOpt := flags.Bool("verbose", false, "Log per-tile wall-clock processing duration.")

	_ = flags.Parse(os.Args[1:])
	if flags.NArg() != 0 {
		flags.Usage()
		return errors.New("unexpected positional arguments")
	}

	flo, err := parse.ParseBandEdge(*floOpt)
	if err != nil {
		return fmt.Errorf("flo: %w", err)
	}
	fhi, err := parse.ParseBandEdge(*fhiOpt)
	if err != nil {
		return fmt.Errorf("fhi: %w", err)
	}
	if fhi <= flo {
		return fmt.Errorf("fhi (%v) must be greater than flo (%v)", fhi, flo)
	}
	sr, err := parse.ParseSampleRate(*srOpt)
	if err != nil {
		return fmt.Errorf("sr: %w", err)
	}

	paths, err := config.Load()
	if err != nil {
		return err
	}

	table, err := bands.Load(paths.CoreBandsPath)
	var malformed *bands.MalformedRowError
	switch {
	case err != nil && errors.As(err, &malformed):
		log.Printf("band table truncated at row %d: %v", malformed.Row, malformed.Reason)
	case err != nil:
		return fmt.Errorf("load band table: %w", err)
	}

	if *metricsAddrOpt != "" {
		metrics.Enable()
		go func() {
			if err := metrics.ListenAndServe(*metricsAddrOpt); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	var launcher webfront.Launcher
	if *webOpt {
		if err := launcher.Start(paths.RootPath); err != nil {
			log.Printf("web front-end not started: %v", err)
		} else {
			defer launcher.Stop()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		v, ok := <-sig
		if ok {
			log.Printf("signal; got %v", v)
			cancel()
		}
	}()

	plan := tile.NewPlan(flo, fhi, sr)
	log.Printf("frequency plan: %d tiles, %.0f Hz wide, %.0f-%.0f Hz", plan.NumTiles(), plan.SampleRateHz, flo, fhi)

	var device radio.Device
	if *replayOpt == "" {
		sim := &radio.Simulator{ToneHz: 1e6, ToneAmplitude: 80, NoiseAmplitude: 4}
		device = sim
	}

	orch := &tile.Orchestrator{
		Device:      device,
		SamplesDir:  paths.CoreSamplesPath,
		BytesBudget: 2 * tile.DefaultSamplesToXferMax,
		RingSize:    1 << 20,
		Timeout:     30 * time.Second,
	}

	for k, centerHz := range plan.Centers {
		select {
		case <-ctx.Done():
			log.Println("shutdown requested, stopping before next tile")
			return nil
		default:
		}

		start := time.Now()
		if err := runTile(ctx, orch, *replayOpt, k, centerHz, sr, table, *thresholdOpt, paths.CoreJSONPath); err != nil {
			log.Printf("tile %d failed: %v", k, err)
		}
		if *verboseOpt {
			log.Printf("tile %d processed in %.3f seconds", k, time.Since(start).Seconds())
		}
	}

	return nil
}

// runTile captures (or replays) one tile and runs it through the
// analysis pipeline, writing either a result.Document or a
// result.ErrorDocument to the tile's JSON path.
func runTile(
	ctx context.Context,
	orch *tile.Orchestrator,
	replayDir string,
	tileIndex int,
	centerHz, sampleRateHz float64,
	table bands.Table,
	thresholdDB float64,
	jsonDir string,
) error {
	jsonPath := filepath.Join(jsonDir, strconv.Itoa(tileIndex))

	samplePath, err := acquireTile(ctx, orch, replayDir, tileIndex, centerHz, sampleRateHz)
	if err != nil {
		writeErrorDocument(jsonPath, "acquire", err)
		return err
	}

	start := time.Now()

	doc, err := analyzeTile(samplePath, centerHz, sampleRateHz, table, thresholdDB)
	if err != nil {
		writeErrorDocument(jsonPath, "analyze", err)
		return err
	}

	if err := result.WriteAtomic(jsonPath, doc); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	metrics.RecordTileProcessingSeconds(time.Since(start).Seconds())
	for _, ch := range doc.Data.Parameters {
		if ch.Present {
			metrics.RecordChannelPresent()
		}
	}
	return nil
}

func acquireTile(ctx context.Context, orch *tile.Orchestrator, replayDir string, tileIndex int, centerHz, sampleRateHz float64) (string, error) {
	if replayDir != "" {
		return filepath.Join(replayDir, strconv.Itoa(tileIndex%11)), nil
	}
	res, err := orch.RunTile(ctx, tileIndex, centerHz, sampleRateHz)
	if err != nil {
		return "", err
	}
	if res.Drops != 0 {
		// RecordRingDrop counts one packet per call; the tile's dropped
		// bytes are carried by the last call.
		for i := uint64(1); i < res.Drops; i++ {
			metrics.RecordRingDrop(0)
		}
		metrics.RecordRingDrop(res.DroppedBytes)
		log.Printf("tile %d: dropped %d packets, %d bytes", tileIndex, res.Drops, res.DroppedBytes)
	}
	metrics.RecordTileBytesWritten(res.BytesWritten)
	return res.Path, nil
}

func analyzeTile(samplePath string, centerHz, sampleRateHz float64, table bands.Table, thresholdDB float64) (result.Document, error) {
	loader, err := iq.OpenMapped(samplePath)
	if err != nil {
		return result.Document{}, err
	}
	defer loader.Close()

	samples, err := loader.Load()
	if err != nil {
		return result.Document{}, err
	}

	large, err := psd.Welch(samples, sampleRateHz, segmentLengthLarge, 0)
	if err != nil {
		return result.Document{}, err
	}
	small, err := psd.Welch(samples, sampleRateHz, segmentLengthSmall, 0)
	if err != nil {
		return result.Document{}, err
	}

	psd.Rearrange(large.P)
	psd.Rearrange(small.P)

	widthLarge := psd.DCSpikeMaskWidth(segmentLengthLarge)
	widthSmall := psd.DCSpikeMaskWidth(segmentLengthSmall)
	psd.MaskDCSpikeLinear(large.P, segmentLengthLarge/2, widthLarge)
	psd.MaskDCSpikeLinear(small.P, segmentLengthSmall/2, widthSmall)

	psd.MapAbsoluteMHz(large.F, centerHz)
	psd.MapAbsoluteMHz(small.F, centerHz)

	kappa := psd.CalibrationOffset(large.P[0], small.P[0])
	smallDB := psd.ToDB(small.P, kappa)

	noiseFloor := detect.NoiseFloor(large.P)
	channels := detect.EvaluateAll(table, large.F, large.P, noiseFloor, thresholdDB)

	doc := result.BuildDocument(small.F, smallDB, channels)
	return doc, nil
}

func writeErrorDocument(jsonPath string, kind string, err error) {
	doc := result.ErrorDocument{Error: kind, Detail: err.Error()}
	if werr := result.WriteAtomic(jsonPath, doc); werr != nil {
		log.Printf("failed to write error document for %s: %v", jsonPath, werr)
	}
}

func main() {
	if err := vhfscand(); err != nil {
		log.Fatal(err)
	}
}
