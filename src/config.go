package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	Optional on-disk configuration for the timing-deviation
 *		warning thresholds CopyLock decode uses (§4.6, §8). Grounded
 *		on deviceid.go's search-path-then-yaml.Unmarshal approach;
 *		absence of a config file is not an error, it just means the
 *		built-in defaults apply.
 *
 *--------------------------------------------------------------------------------*/

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables a deployment might want to override without a
// rebuild.
type Config struct {
	CopyLock CopyLockConfig `yaml:"copylock"`
}

// CopyLockConfig is the set of timing-deviation thresholds §4.6's
// post-decode validation compares sector latency against.
type CopyLockConfig struct {
	ShortSectorThresholdPercent float64 `yaml:"short_sector_threshold_percent"`
	LongSectorThresholdPercent  float64 `yaml:"long_sector_threshold_percent"`
	OtherSectorTolerancePercent float64 `yaml:"other_sector_tolerance_percent"`
}

// DefaultConfig returns the thresholds §8's scenarios are written against:
// -4%/+4% for the deliberately-skewed sectors 4/6, +-2% for everything else.
func DefaultConfig() Config {
	return Config{
		CopyLock: CopyLockConfig{
			ShortSectorThresholdPercent: -4,
			LongSectorThresholdPercent:  4,
			OtherSectorTolerancePercent: 2,
		},
	}
}

var activeConfig = DefaultConfig()

// SetConfig replaces the process-wide config CopyLock decode consults for
// its timing-deviation thresholds. Tests and long-running hosts can call
// this once at startup; it is not safe to call concurrently with a decode.
func SetConfig(c Config) {
	activeConfig = c
}

var configSearchLocations = []string{
	"fluxcodec.yaml",
	"data/fluxcodec.yaml",
	"/etc/fluxcodec/fluxcodec.yaml",
}

// LoadConfig reads the first config file found in configSearchLocations,
// falling back to DefaultConfig if none exists or parses.
func LoadConfig() Config {
	var cfg = DefaultConfig()

	var fp *os.File
	for _, location := range configSearchLocations {
		var err error

		fp, err = os.Open(location)
		if err == nil {
			defer fp.Close()
			break
		}
	}

	if fp == nil {
		return cfg
	}

	var data, readErr = io.ReadAll(fp)
	if readErr != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}
