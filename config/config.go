// Copyright 2026 The VHF Scan Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config resolves the handful of filesystem paths the monitor
// needs at startup from a ".env" file, searching the executable's own
// directory and its two parents the way the original tooling did.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Paths holds the filesystem locations the monitor reads from and
// writes to, resolved once at startup.
type Paths struct {
	RootPath        string
	CoreSamplesPath string
	CoreJSONPath    string
	CoreBandsPath   string
}

// ConfigError reports a failure to locate or parse the ".env" file, or
// a missing required key within it.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Reason)
}

var requiredKeys = []string{
	"ROOT_PATH",
	"CORE_SAMPLES_PATH",
	"CORE_JSON_PATH",
	"CORE_BANDS_PATH",
}

// Load searches the running executable's directory and its two parent
// directories, in that order, for a ".env" file, then parses it and
// returns the four required paths. It is fatal-by-return: a missing
// file or a missing key is reported as a *ConfigError rather than
// leaving any field at a zero value.
func Load() (Paths, error) {
	exePath, err := os.Executable()
	if err != nil {
		return Paths{}, &ConfigError{Reason: fmt.Sprintf("resolve executable path: %v", err)}
	}
	return load(filepath.Dir(exePath))
}

func load(exeDir string) (Paths, error) {
	dir, err := filepath.Abs(exeDir)
	if err != nil {
		return Paths{}, &ConfigError{Reason: fmt.Sprintf("resolve executable directory: %v", err)}
	}

	candidates := searchLocations(dir)

	var envPath string
	for _, candidate := range candidates {
		p := filepath.Join(candidate, ".env")
		if _, err := os.Stat(p); err == nil {
			envPath = p
			break
		}
	}
	if envPath == "" {
		return Paths{}, &ConfigError{Reason: fmt.Sprintf("no .env found in %v", candidates)}
	}

	env, err := godotenv.Read(envPath)
	if err != nil {
		return Paths{}, &ConfigError{Reason: fmt.Sprintf("parse %s: %v", envPath, err)}
	}

	values := make(map[string]string, len(requiredKeys))
	for _, key := range requiredKeys {
		v, ok := env[key]
		if !ok || v == "" {
			return Paths{}, &ConfigError{Reason: fmt.Sprintf("missing required key %q in %s", key, envPath)}
		}
		values[key] = v
	}

	return Paths{
		RootPath:        values["ROOT_PATH"],
		CoreSamplesPath: values["CORE_SAMPLES_PATH"],
		CoreJSONPath:    values["CORE_JSON_PATH"],
		CoreBandsPath:   values["CORE_BANDS_PATH"],
	}, nil
}

// searchLocations returns dir, its parent, and its grandparent, in
// that order, skipping any level that does not exist (e.g. dir is
// already the filesystem root).
func searchLocations(dir string) []string {
	locations := []string{dir}
	up1 := filepath.Dir(dir)
	if up1 != dir {
		locations = append(locations, up1)
		up2 := filepath.Dir(up1)
		if up2 != up1 {
			locations = append(locations, up2)
		}
	}
	return locations
}
