// Package pipeline provides the core solve pipeline for clearmatch.
//
// This package implements the complete load → solve → render pipeline used
// by both the CLI and the HTTP API. Centralizing it keeps caching and
// validation behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode and validate the market definition
//  2. Solve: run the selected mechanism (ttc2, ttc1, da)
//  3. Render: encode the result in the requested formats (json, dot, svg, png)
//
// Solve results and rendered artifacts are cached by content hash, so
// re-solving an unchanged market is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Mechanism: "ttc2",
//	    Path:      "market.json",
//	    Formats:   []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/clearmatch/clearmatch/pkg/cache"
	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/marketio"
)

// Mechanism names accepted by the pipeline.
const (
	MechanismTTC2 = "ttc2" // two-sided top trading cycles
	MechanismTTC1 = "ttc1" // one-sided top trading cycles
	MechanismDA   = "da"   // deferred acceptance
)

// Output format constants.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{FormatJSON}

// Options contains all configuration for one pipeline run. The struct
// serializes to JSON for API requests.
type Options struct {
	// Mechanism selects the algorithm: ttc2, ttc1, or da.
	Mechanism string `json:"mechanism"`

	// SwapRoles runs a two-sided mechanism with the sides exchanged.
	// Rejected for ttc1, which has no second set of preferences.
	SwapRoles bool `json:"swap_roles,omitempty"`

	// Market is the inline market definition. Takes precedence over Path.
	Market *marketio.Document `json:"market,omitempty"`

	// Formats are the artifacts to produce.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache and overwrites it with fresh results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Path   string      `json:"-"` // market definition file, used when Market is nil
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateMechanism(o.Mechanism); err != nil {
		return err
	}
	if o.Market == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "market definition or path is required")
	}
	if o.Mechanism == MechanismTTC1 && o.SwapRoles {
		return errors.New(errors.ErrCodeUnsupported, "swap_roles is not supported for ttc1")
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// solveKeyOpts returns the cache key options for the solve stage.
func (o *Options) solveKeyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{SwapRoles: o.SwapRoles}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// Document is the solved matching with statistics.
	Document *marketio.ResultDocument

	// MarketHash is the content hash of the canonical market encoding.
	MarketHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution timings.
type Stats struct {
	LoadTime   time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // solve result came from cache
	RenderHit bool // all artifacts came from cache
}
