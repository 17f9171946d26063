/*
Package config provides configuration loading for retain.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values, plus
a Settings type that resolves a file into the handful of knobs the library
exposes (snapshot path, observability toggles, log level).

# Basic Usage

Load a file and resolve Settings:

	settings, err := config.LoadSettings("retain.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	registry, store, err := retain.Open(settings)

Or work with raw values:

	cfg, _ := config.FromFile("retain.yaml")
	path := cfg.String("snapshot_path", "")
	metrics := cfg.Bool("metrics", false)

# Type Coercion

Duration handles multiple input types:
  - string: parsed with time.ParseDuration ("30s", "1h30m")
  - int/float64: interpreted as seconds

Int accepts float64 values without a fractional part, which is how JSON
decoding represents numbers.
*/
package config
