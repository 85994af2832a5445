// Package pipeline runs the manifest → layout → render pipeline shared by
// the CLI and the HTTP service.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, manifest, raw, pipeline.Options{
//	    Width:   960,
//	    Layout:  masonry.DefaultOptions(),
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Layouts are cached under a key derived from the raw manifest bytes and
// every option that changes placement. Rendering is cheap and always runs.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the container width used when neither the options
	// nor the manifest provide one.
	DefaultWidth = 960.0

	// DefaultTextWidth is the terminal width of text renderings.
	DefaultTextWidth = 100
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It doubles as the HTTP request
// body, hence the JSON tags.
type Options struct {
	// Width is the container width. Zero falls back to the manifest width,
	// then DefaultWidth.
	Width float64 `json:"width,omitempty"`

	// Layout holds the engine options.
	Layout masonry.Options `json:"layout"`

	// Formats lists the artifacts to render.
	Formats []string `json:"formats,omitempty"`

	// TextWidth is the terminal width of the text artifact.
	TextWidth int `json:"text_width,omitempty"`

	// Refresh bypasses the layout cache lookup.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults validates the options and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be non-negative, got %v", o.Width)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (want json, svg or text)", f)
		}
	}
	if o.TextWidth <= 0 {
		o.TextWidth = DefaultTextWidth
	}
	if o.Logger != nil && o.Layout.Logger == nil {
		o.Layout.Logger = o.Logger
	}
	return o.Layout.Validate()
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the computed layout.
	Snapshot masonry.Snapshot

	// ManifestHash is the content hash of the manifest.
	ManifestHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Columns    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
}
