package masonry

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/matzehuels/mosaicflow/pkg/errors"
)

// Attribute keys recognized by FromAttributes, in camel case.
const (
	AttrItemSelector          = "itemSelector"
	AttrColumnClass           = "columnClass"
	AttrColumnClassIdentifier = "columnClassIdentifier"
	AttrMinItemWidth          = "minItemWidth"
	AttrThreshold             = "threshold"
	AttrLevelBottom           = "levelBottom"
)

var knownAttributes = []string{
	AttrItemSelector,
	AttrColumnClass,
	AttrColumnClassIdentifier,
	AttrMinItemWidth,
	AttrThreshold,
	AttrLevelBottom,
}

// FromAttributes builds Options from a free-form attribute map such as the
// data attributes of a container element. Keys may be camel case
// ("minItemWidth"), dashed ("min-item-width") or carry a "data-" prefix.
// Unset keys keep their defaults; unknown keys are rejected.
func FromAttributes(attrs map[string]string) (Options, error) {
	opts := DefaultOptions()

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, raw := range keys {
		value := strings.TrimSpace(attrs[raw])
		switch key := camelize(raw); key {
		case AttrItemSelector:
			opts.ItemSelector = value
		case AttrColumnClass, AttrColumnClassIdentifier:
			opts.ColumnClass = value
		case AttrMinItemWidth:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "attribute %s", raw)
			}
			opts.MinItemWidth = f
		case AttrThreshold:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "attribute %s", raw)
			}
			opts.Threshold = f
		case AttrLevelBottom:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "attribute %s", raw)
			}
			opts.LevelBottom = b
		default:
			if s := suggest(key); s != "" {
				return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown attribute %q (did you mean %q?)", raw, s)
			}
			return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown attribute %q", raw)
		}
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// camelize turns "data-min-item-width" into "minItemWidth".
func camelize(key string) string {
	key = strings.TrimPrefix(strings.TrimSpace(key), "data-")
	parts := strings.Split(key, "-")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// suggest returns the closest known attribute within a small edit distance.
func suggest(key string) string {
	const maxDistance = 3
	best, bestDist := "", maxDistance+1
	lower := strings.ToLower(key)
	for _, k := range knownAttributes {
		if d := levenshtein.ComputeDistance(lower, strings.ToLower(k)); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
