package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaicflow/pkg/cache"
	"github.com/matzehuels/mosaicflow/pkg/errors"
	mfio "github.com/matzehuels/mosaicflow/pkg/io"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
	"github.com/matzehuels/mosaicflow/pkg/render"
)

// Runner executes the pipeline with caching. It holds no per-run state;
// multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute lays out the manifest and renders the requested formats. raw is
// the manifest as read from disk or the wire; when nil the manifest is
// hashed from its JSON encoding.
func (r *Runner) Execute(ctx context.Context, m *mfio.Manifest, raw []byte, opts Options) (*Result, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Width == 0 {
		opts.Width = m.Width
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if raw == nil {
		data, err := json.Marshal(m)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash manifest")
		}
		raw = data
	}

	result := &Result{ManifestHash: cache.Hash(raw)}

	layoutStart := time.Now()
	snap, hit, err := r.Layout(ctx, m, result.ManifestHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Snapshot = snap
	result.CacheInfo.LayoutHit = hit
	result.Stats.Items = len(snap.Items)
	result.Stats.Columns = snap.ColumnCount()
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"columns", result.Stats.Columns,
		"items", result.Stats.Items,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, err := Render(snap, labels(m, snap), opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs", "formats", opts.Formats, "duration", result.Stats.RenderTime)
	return result, nil
}

// Layout returns the snapshot for the manifest, from the cache when
// possible. The bool reports a cache hit.
func (r *Runner) Layout(ctx context.Context, m *mfio.Manifest, manifestHash string, opts Options) (masonry.Snapshot, bool, error) {
	key := r.Keyer.LayoutKey(manifestHash, cache.LayoutKeyOpts{
		Width:        opts.Width,
		MinItemWidth: opts.Layout.MinItemWidth,
		Threshold:    opts.Layout.Threshold,
		LevelBottom:  opts.Layout.LevelBottom,
	})

	if !opts.Refresh {
		var snap masonry.Snapshot
		hit, err := cache.GetJSON(ctx, r.Cache, "layout", key, &snap)
		if err != nil {
			r.Logger.Warn("layout cache lookup failed", "err", err)
		} else if hit {
			r.Logger.Debug("layout cache hit", "key", key)
			return snap, true, nil
		}
	}

	snap, err := ComputeLayout(m, opts)
	if err != nil {
		return masonry.Snapshot{}, false, err
	}
	if err := cache.SetJSON(ctx, r.Cache, "layout", key, snap, cache.LayoutTTL); err != nil {
		r.Logger.Warn("layout cache write failed", "err", err)
	}
	return snap, false, nil
}

// ComputeLayout runs an engine over the manifest items at opts.Width and
// returns its snapshot.
func ComputeLayout(m *mfio.Manifest, opts Options) (masonry.Snapshot, error) {
	f, items := m.Build(opts.Width)
	e, err := masonry.New(f, items, opts.Layout)
	if err != nil {
		return masonry.Snapshot{}, err
	}
	return e.Snapshot()
}

// Render generates output artifacts in the requested formats. labels maps
// item IDs to display labels and may be nil.
func Render(snap masonry.Snapshot, labels map[string]string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := mfio.WriteSnapshot(&buf, snap); err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = buf.Bytes()
		case FormatSVG:
			artifacts[format] = render.SVG(snap, render.WithLabels(labels))
		case FormatText:
			width := opts.TextWidth
			if width <= 0 {
				width = DefaultTextWidth
			}
			artifacts[format] = []byte(render.Text(snap, width, render.WithLabels(labels)) + "\n")
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
		}
	}
	return artifacts, nil
}

// labels maps placed item IDs to manifest labels. Snapshot items follow
// manifest order, which also covers generated IDs.
func labels(m *mfio.Manifest, snap masonry.Snapshot) map[string]string {
	out := make(map[string]string)
	for i, id := range snap.Items {
		if i < len(m.Items) && m.Items[i].Label != "" {
			out[id] = m.Items[i].Label
		}
	}
	return out
}
