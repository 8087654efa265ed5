// Package config collects the settings of the pagesim commands from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvMaxFrames      = "PAGESIM_MAX_FRAMES"
	EnvMinSweepFrames = "PAGESIM_MIN_SWEEP_FRAMES"
	EnvMaxRange       = "PAGESIM_MAX_RANGE"
	EnvRatesFile      = "PAGESIM_RATES_FILE"
	EnvMonitorPort    = "PAGESIM_MONITOR_PORT"
)

// DefaultEnvFile is read by Load when no file is named.
const DefaultEnvFile = ".env"

// ErrInvalidConfig is returned when a setting has an unusable value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the limits and defaults of the commands.
type Config struct {
	// MaxFrames bounds the frame count of a run and of a sweep.
	MaxFrames int

	// MinSweepFrames is the smallest frame count a sweep may start at.
	MinSweepFrames int

	// MaxRange bounds the page range of generated traces.
	MaxRange int

	// RatesFile is where sweeps write their miss-rate table.
	RatesFile string

	// MonitorPort is the port of the monitoring server. 0 picks a free
	// port.
	MonitorPort int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxFrames:      100,
		MinSweepFrames: 2,
		MaxRange:       100,
		RatesFile:      "pagerates.txt",
		MonitorPort:    0,
	}
}

// Load starts from Default, applies the given .env files and then the
// process environment, which takes precedence. Without arguments it reads
// DefaultEnvFile if that file exists.
func Load(envFiles ...string) (Config, error) {
	optional := len(envFiles) == 0
	if optional {
		envFiles = []string{DefaultEnvFile}
	}

	values := make(map[string]string)
	for _, file := range envFiles {
		fileValues, err := godotenv.Read(file)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return Config{}, fmt.Errorf("reading %s: %w", file, err)
		}

		for k, v := range fileValues {
			values[k] = v
		}
	}

	for _, key := range []string{
		EnvMaxFrames, EnvMinSweepFrames, EnvMaxRange,
		EnvRatesFile, EnvMonitorPort,
	} {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	return fromValues(values)
}

func fromValues(values map[string]string) (Config, error) {
	c := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{EnvMaxFrames, &c.MaxFrames},
		{EnvMinSweepFrames, &c.MinSweepFrames},
		{EnvMaxRange, &c.MaxRange},
		{EnvMonitorPort, &c.MonitorPort},
	}
	for _, field := range ints {
		v, ok := values[field.key]
		if !ok || v == "" {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not an integer",
				ErrInvalidConfig, field.key, v)
		}

		*field.dst = n
	}

	if v, ok := values[EnvRatesFile]; ok && v != "" {
		c.RatesFile = v
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks that the settings are consistent.
func (c Config) Validate() error {
	switch {
	case c.MaxFrames < 1:
		return fmt.Errorf("%w: maximum frames must be at least 1, got %d",
			ErrInvalidConfig, c.MaxFrames)
	case c.MinSweepFrames < 1:
		return fmt.Errorf("%w: minimum sweep frames must be at least 1, got %d",
			ErrInvalidConfig, c.MinSweepFrames)
	case c.MinSweepFrames > c.MaxFrames:
		return fmt.Errorf("%w: minimum sweep frames %d exceed maximum frames %d",
			ErrInvalidConfig, c.MinSweepFrames, c.MaxFrames)
	case c.MaxRange < 1:
		return fmt.Errorf("%w: maximum range must be at least 1, got %d",
			ErrInvalidConfig, c.MaxRange)
	case c.MonitorPort < 0 || c.MonitorPort > 65535:
		return fmt.Errorf("%w: monitor port %d is out of range",
			ErrInvalidConfig, c.MonitorPort)
	}

	return nil
}
