// Package config defines the data structures for a valuation book and
// includes functions for loading and parsing the config.
package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// Configuration holds a full valuation book: the scenarios to value and
// weight, the bonds to price, and the runtime knobs.
type Configuration struct {
	Scenarios  []Scenario
	Bonds      []Bond
	RootFinder RootFinder    `yaml:"rootFinder,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Scenario is one projected outcome: a probability, a cash-flow series, and
// the rates used to value it.
type Scenario struct {
	Name        string
	Probability float64

	// DiscountRate is the per-period discount rate, decimal form.
	DiscountRate float64 `yaml:"discountRate"`

	// TerminalGrowth, when set, capitalizes the final cash flow into a
	// growing perpetuity appended at the end of the explicit horizon.
	TerminalGrowth *float64 `yaml:"terminalGrowth,omitempty"`

	// CashFlows are the projections; position 0 is an initial outlay when
	// the series includes one.
	CashFlows []float64 `yaml:"cashFlows"`
}

// Bond describes a fixed-coupon instrument to price alongside the scenarios.
type Bond struct {
	Name       string
	Face       float64
	CouponRate float64 `yaml:"couponRate"`
	Yield      float64
	Years      int
	Frequency  int
}

// RootFinder carries the per-book IRR solver knobs. Zero-valued fields fall
// back to the kernel defaults.
type RootFinder struct {
	InitialGuess  float64 `yaml:"initialGuess,omitempty"`
	MaxIterations int     `yaml:"maxIterations,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
	GridMin       float64 `yaml:"gridMin,omitempty"`
	GridMax       float64 `yaml:"gridMax,omitempty"`
	GridPoints    int     `yaml:"gridPoints,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationBytes parses a YAML configuration held in memory, e.g. an
// HTTP upload.
func LoadConfigurationBytes(data []byte) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error parsing config, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
