// Copyright 2021 Mark Siner. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFrequency is a helper function to parse a frequency value
// specified as a command-line argument. For convenience, valid
// arguments can have a suffix of k, K, m, M, g, or G to indicate
// the value is in kHz, MHz, or GHz respectively (e.g. 1.42G). Any
// text before such a prefix must represent a valid floating point
// value as parsed by strconv.ParseFloat(). The return value is the
// parsed frequency in Hz.
func ParseFrequency(arg string) (float64, error) {
	var mult float64 = 1
	arg = strings.ToLower(arg)
	switch {
	case arg == "":
		// do nothing
	case strings.HasSuffix(arg, "k"):
		mult = 1000
		arg = strings.TrimSuffix(arg, "k")
	case strings.HasSuffix(arg, "m"):
		mult = 1000 * 1000
		arg = strings.TrimSuffix(arg, "m")
	case strings.HasSuffix(arg, "g"):
		mult = 1000 * 1000 * 1000
		arg = strings.TrimSuffix(arg, "g")
	}
	freq, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, err
	}
	return freq * mult, nil
}

// ParseBandEdge is a wrapper around ParseFrequency that also guarantees
// the result is a valid frequency-plan boundary for this monitor.
// Specifically, it will return an error if the frequency is less than
// 1 kHz or greater than 1 GHz, a range wide enough for VHF and
// low-UHF scanning without the RSP tuner's 2 GHz upper bound.
func ParseBandEdge(arg string) (float64, error) {
	freq, err := ParseFrequency(arg)
	if err != nil {
		return 0, err
	}
	if freq < 1e3 || freq > 1e9 {
		return 0, fmt.Errorf("invalid band edge; got %f Hz, want 1kHz<=Freq<=1GHz", freq)
	}
	return freq, nil
}

// ParseSampleRate is a wrapper around ParseFrequency that also
// guarantees the result is a valid tile sample rate. It will return
// an error if the rate is less than 1 MHz or greater than 61.44 MHz,
// wide enough to cover the reference 20 MHz tile width along with the
// common SDR front-end rates in the pack.
func ParseSampleRate(arg string) (float64, error) {
	freq, err := ParseFrequency(arg)
	if err != nil {
		return 0, err
	}
	if freq < 1e6 || freq > 61.44e6 {
		return 0, fmt.Errorf("invalid sample rate; got %f Hz, want 1MHz<=Rate<=61.44MHz", freq)
	}
	return freq, nil
}
