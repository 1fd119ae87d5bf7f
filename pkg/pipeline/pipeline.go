// Package pipeline provides the core document pipeline for ipcraft.
//
// This package implements the load → validate → render pipeline used by
// every CLI entry point. Centralizing it keeps caching and logging behavior
// identical whether an artifact is produced by `ipcraft render`, the
// interactive editor, or `ipcraft export`.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and decode the address-map document
//  2. Validate: collect layout violations (overlaps, out-of-range fields)
//  3. Render: generate output artifacts (SVG, PNG, DOT, XLSX, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Path:    "soc.json",
//	    View:    pipeline.ViewStrip,
//	    Block:   "uart0",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bleviet/ipcraft/pkg/cache"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default strip drawing width in pixels.
	DefaultWidth = 800.0
)

// View constants for visualization types.
const (
	ViewStrip     = "strip"
	ViewHierarchy = "hierarchy"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// DefaultView is the default visualization type.
const DefaultView = ViewStrip

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatXLSX: true,
	FormatPDF:  true,
}

// ValidViews is the set of supported visualization types.
var ValidViews = map[string]bool{
	ViewStrip:     true,
	ViewHierarchy: true,
}

// viewFormats restricts which formats each view can produce. Document-level
// exports (xlsx, pdf) work for either view.
var viewFormats = map[string]map[string]bool{
	ViewStrip:     {FormatSVG: true, FormatXLSX: true, FormatPDF: true},
	ViewHierarchy: {FormatSVG: true, FormatPNG: true, FormatDOT: true, FormatXLSX: true, FormatPDF: true},
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for the document pipeline.
type Options struct {
	// Load options
	Path     string `json:"path"`
	MapIndex int    `json:"map_index,omitempty"`

	// Target selection inside the map. For the strip view a block is
	// required; naming a register narrows the strip to its bit fields.
	Block    string `json:"block,omitempty"`
	Register string `json:"register,omitempty"`

	// Render options
	View     string   `json:"view,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocHash is the content hash of the loaded document.
	DocHash string

	// Violations are layout problems found during validation. A document
	// with violations still renders; the caller decides how loud to be.
	Violations []error

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount    int
	RegisterCount int
	LoadTime      time.Duration
	ValidateTime  time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, xlsx, pdf)", format)
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

// ValidateView checks that a visualization type is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return fmt.Errorf("invalid view: %q (must be one of: strip, hierarchy)", view)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Path == "" {
		return fmt.Errorf("path is required")
	}
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if !viewFormats[o.View][f] {
			return fmt.Errorf("format %q is not available for the %s view", f, o.View)
		}
	}
	if o.View == ViewStrip && o.Block == "" && needsTarget(o.Formats) {
		return fmt.Errorf("block is required for the strip view")
	}
	o.validated = true
	return nil
}

// needsTarget reports whether any requested format draws a single strip
// rather than the whole document.
func needsTarget(formats []string) bool {
	for _, f := range formats {
		if f == FormatSVG {
			return true
		}
	}
	return false
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Target returns the selection path used in cache keys and diagnostics.
func (o *Options) Target() string {
	t := o.Block
	if o.Register != "" {
		t += "/" + o.Register
	}
	return t
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Target:   o.View + ":" + o.Target(),
		Width:    o.Width,
		Detailed: o.Detailed,
	}
}
