// Package constants provides shared constants for the valuation kernel.
package constants

// Rate bounds
const (
	// RateFloor is the open lower bound for any per-period rate; compounding
	// at a rate at or below -100% is undefined.
	RateFloor = -1.0
)

// Root-finder defaults. These seed irr.Config; every knob is per-call.
const (
	// DefaultIRRGuess is the starting rate for the Newton-Raphson phase
	DefaultIRRGuess = 0.10

	// DefaultIRRMaxIterations bounds each root-finding phase
	DefaultIRRMaxIterations = 200

	// DefaultIRRTolerance is the convergence tolerance on |NPV|
	DefaultIRRTolerance = 1e-8

	// DefaultGridMin is the low end of the fallback bracketing grid (-90%)
	DefaultGridMin = -0.9

	// DefaultGridMax is the high end of the fallback bracketing grid (+200%)
	DefaultGridMax = 2.0

	// DefaultGridPoints is the resolution of the fallback bracketing grid
	DefaultGridPoints = 300
)

// Scenario aggregation defaults
const (
	// ProbabilityTolerance is how far the probability mass may stray from 1
	ProbabilityTolerance = 1e-6
)

// Numeric comparison tolerances
const (
	// ZeroTolerance is the band within which a computed value (e.g. a bond
	// price in a duration denominator) is treated as zero
	ZeroTolerance = 1e-12
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the JSON API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
