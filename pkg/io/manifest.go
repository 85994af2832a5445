package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
	"github.com/matzehuels/mosaicflow/pkg/masonry/measure"
)

// Supported manifest formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Manifest is the decoded form of an item manifest.
type Manifest struct {
	Width   float64         `json:"width,omitempty" toml:"width"`
	Options ManifestOptions `json:"options,omitempty" toml:"options"`
	Items   []ManifestItem  `json:"items" toml:"items"`
}

// ManifestOptions overrides engine options. Nil fields keep the defaults.
type ManifestOptions struct {
	ItemSelector *string  `json:"item_selector,omitempty" toml:"item_selector"`
	ColumnClass  *string  `json:"column_class,omitempty" toml:"column_class"`
	MinItemWidth *float64 `json:"min_item_width,omitempty" toml:"min_item_width"`
	Threshold    *float64 `json:"threshold,omitempty" toml:"threshold"`
	LevelBottom  *bool    `json:"level_bottom,omitempty" toml:"level_bottom"`
}

// ManifestItem declares one item.
type ManifestItem struct {
	ID     string         `json:"id,omitempty" toml:"id"`
	Height float64        `json:"height" toml:"height"`
	Label  string         `json:"label,omitempty" toml:"label"`
	Meta   map[string]any `json:"meta,omitempty" toml:"meta"`
}

// ReadJSON decodes a JSON manifest from r and validates it. Unknown fields
// are rejected.
func ReadJSON(r io.Reader) (*Manifest, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadTOML decodes a TOML manifest from r and validates it. Unknown keys
// are rejected.
func ReadTOML(r io.Reader) (*Manifest, error) {
	var m Manifest
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown manifest keys: %s", strings.Join(keys, ", "))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Read decodes a manifest in the given format.
func Read(r io.Reader, format string) (*Manifest, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported manifest format %q", format)
	}
}

// FormatOf returns the manifest format implied by a file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "cannot infer manifest format from %q (want .json or .toml)", path)
	}
}

// Import reads the manifest file at path. It also returns the raw file
// contents, which callers hash for cache keys.
func Import(path string) (*Manifest, []byte, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, data, nil
}

// Validate checks widths, heights and item IDs.
func (m *Manifest) Validate() error {
	if err := errors.ValidateMeasure("width", m.Width); err != nil {
		return err
	}
	seen := make(map[string]bool, len(m.Items))
	for i, it := range m.Items {
		if err := errors.ValidateMeasure(fmt.Sprintf("items[%d].height", i), it.Height); err != nil {
			return err
		}
		if it.ID == "" {
			continue
		}
		if err := errors.ValidateItemID(it.ID); err != nil {
			return err
		}
		if seen[it.ID] {
			return errors.New(errors.ErrCodeDuplicateItem, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

// Apply overlays the manifest options onto base.
func (o ManifestOptions) Apply(base masonry.Options) masonry.Options {
	if o.ItemSelector != nil {
		base.ItemSelector = *o.ItemSelector
	}
	if o.ColumnClass != nil {
		base.ColumnClass = *o.ColumnClass
	}
	if o.MinItemWidth != nil {
		base.MinItemWidth = *o.MinItemWidth
	}
	if o.Threshold != nil {
		base.Threshold = *o.Threshold
	}
	if o.LevelBottom != nil {
		base.LevelBottom = *o.LevelBottom
	}
	return base
}

// Build creates engine items and a measurer answering with the declared
// heights. width overrides the manifest width when positive. Each item's
// Value is its ManifestItem.
func (m *Manifest) Build(width float64) (*measure.Fixed, []*masonry.Item) {
	if width <= 0 {
		width = m.Width
	}
	f := measure.NewFixed(width)
	items := make([]*masonry.Item, len(m.Items))
	for i, mi := range m.Items {
		it := masonry.NewItem(mi.ID, mi)
		f.Set(it, mi.Height)
		items[i] = it
	}
	return f, items
}
