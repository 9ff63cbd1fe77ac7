package cuco

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HostConfig is the YAML-loadable configuration for the cucohost
// command-line demo: the construction-time knobs exposed by Option,
// surfaced as plain fields so a deployment can be pinned to a config
// file instead of flags alone.
type HostConfig struct {
	Capacity     int     `yaml:"capacity"`
	LoadFactor   float64 `yaml:"load_factor"`
	WindowWidth  int     `yaml:"window_width"`
	Probing      string  `yaml:"probing"` // "linear", "quadratic", "double"
	Seed         uint64  `yaml:"seed"`
	EmptyKey     uint64  `yaml:"empty_key"`
	ErasedKey    uint64  `yaml:"erased_key"`
	EraseEnabled bool    `yaml:"erase_enabled"`
}

// DefaultHostConfig returns the configuration cucohost runs with when
// no --config file is given.
func DefaultHostConfig() *HostConfig {
	return &HostConfig{
		Capacity:     1 << 20,
		LoadFactor:   0.8,
		WindowWidth:  4,
		Probing:      "linear",
		Seed:         0,
		EmptyKey:     ^uint64(0),
		ErasedKey:    ^uint64(0) - 1,
		EraseEnabled: false,
	}
}

// LoadHostConfig reads a YAML file at path, overlaying it onto
// DefaultHostConfig so an incomplete file still produces a usable
// configuration.
func LoadHostConfig(path string) (*HostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, backendErrorf("LoadHostConfig", err)
	}
	cfg := DefaultHostConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, configErrorf("LoadHostConfig", err)
	}
	return cfg, nil
}

// ProbingScheme resolves the configured scheme name to a ProbingScheme
// value, defaulting to LinearProbing for an empty string.
func (c *HostConfig) ProbingScheme() (ProbingScheme, error) {
	switch c.Probing {
	case "", "linear":
		return LinearProbing{G: 1}, nil
	case "quadratic":
		return QuadraticProbing{G: 1}, nil
	case "double":
		return DoubleHashProbing{G: 1}, nil
	default:
		return nil, configErrorf("ProbingScheme", fmt.Errorf("unknown probing scheme %q", c.Probing))
	}
}

// NewContainer builds the uint64-keyed/uint64-valued container this
// HostConfig describes. n is the number of entries the caller intends
// to insert this run; when LoadFactor is positive, capacity is derived
// from n via NewFromLoadFactor so the configured load factor actually
// governs the container's size. A non-positive LoadFactor falls back
// to the fixed Capacity field, so a config that only sets capacity
// still works.
func (c *HostConfig) NewContainer(stream *Stream, n int) (*Container[uint64, uint64], error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	if c.LoadFactor > 0 {
		return NewFromLoadFactor[uint64, uint64](stream, n, c.LoadFactor, c.EmptyKey, opts...)
	}
	return New[uint64, uint64](stream, c.Capacity, c.EmptyKey, opts...)
}

// Options builds the Option slice New/NewFromLoadFactor expect from
// this HostConfig, for the uint64-keyed/uint64-valued container the
// CLI demo instantiates.
func (c *HostConfig) Options() ([]Option[uint64, uint64], error) {
	scheme, err := c.ProbingScheme()
	if err != nil {
		return nil, err
	}
	opts := []Option[uint64, uint64]{
		WithWindowWidth[uint64, uint64](c.WindowWidth),
		WithProbingScheme[uint64, uint64](scheme),
		WithSeed[uint64, uint64](c.Seed),
	}
	if c.EraseEnabled {
		opts = append(opts, WithErasedSentinel[uint64, uint64](c.ErasedKey))
	}
	return opts, nil
}
