package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/mosaicflow/pkg/cache"
	"github.com/matzehuels/mosaicflow/pkg/errors"
	mfio "github.com/matzehuels/mosaicflow/pkg/io"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

const manifestJSON = `{
  "width": 720,
  "items": [
    {"id": "a", "height": 300, "label": "Alpha"},
    {"id": "b", "height": 300},
    {"id": "c", "height": 100},
    {"id": "d", "height": 50}
  ]
}`

func readManifest(t *testing.T) (*mfio.Manifest, []byte) {
	t.Helper()
	raw := []byte(manifestJSON)
	m, err := mfio.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return m, raw
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{Layout: masonry.DefaultOptions()}, ""},
		{"negative width", Options{Width: -1, Layout: masonry.DefaultOptions()}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"png"}, Layout: masonry.DefaultOptions()}, errors.ErrCodeUnsupported},
		{"zero layout", Options{}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			err := o.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateAndSetDefaults: %v", err)
				}
				if diff := cmp.Diff([]string{FormatJSON}, o.Formats); diff != "" {
					t.Errorf("default formats mismatch (-want +got):\n%s", diff)
				}
				if o.TextWidth != DefaultTextWidth {
					t.Errorf("TextWidth = %d, want %d", o.TextWidth, DefaultTextWidth)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	m, raw := readManifest(t)
	r := quietRunner(cache.NewNullCache())

	res, err := r.Execute(context.Background(), m, raw, Options{
		Layout:  masonry.DefaultOptions(),
		Formats: []string{FormatJSON, FormatSVG, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var got [][]string
	for _, c := range res.Snapshot.Columns {
		var ids []string
		for _, it := range c.Items {
			ids = append(ids, it.ID)
		}
		got = append(got, ids)
	}
	want := [][]string{{"a"}, {"b"}, {"c", "d"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if res.Snapshot.ContainerWidth != 720 {
		t.Errorf("ContainerWidth = %v, want manifest width 720", res.Snapshot.ContainerWidth)
	}
	if res.Stats.Items != 4 || res.Stats.Columns != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("null cache reported a hit")
	}
	if res.ManifestHash != cache.Hash(raw) {
		t.Error("ManifestHash does not match raw manifest")
	}

	decoded, err := mfio.ReadSnapshot(bytes.NewReader(res.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if diff := cmp.Diff(res.Snapshot, decoded); diff != "" {
		t.Errorf("json artifact mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), ">Alpha</text>") {
		t.Error("svg artifact is missing the manifest label")
	}
	if !strings.Contains(string(res.Artifacts[FormatText]), "Alpha") {
		t.Error("text artifact is missing the manifest label")
	}
}

func TestExecuteUsesCache(t *testing.T) {
	m, raw := readManifest(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)
	ctx := context.Background()
	opts := Options{Width: 480, Layout: masonry.DefaultOptions()}

	first, err := r.Execute(ctx, m, raw, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(ctx, m, raw, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || !second.CacheInfo.LayoutHit {
		t.Errorf("hits = %v, %v; want false, true", first.CacheInfo.LayoutHit, second.CacheInfo.LayoutHit)
	}
	if diff := cmp.Diff(first.Snapshot, second.Snapshot); diff != "" {
		t.Errorf("cached snapshot mismatch (-first +second):\n%s", diff)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, m, raw, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.Width = 960
	fourth, _ := r.Execute(ctx, m, raw, opts)
	if fourth.CacheInfo.LayoutHit {
		t.Error("a different width should miss the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, nil, nil, Options{Layout: masonry.DefaultOptions()}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil manifest error = %v", err)
	}

	m, raw := readManifest(t)
	bad := masonry.DefaultOptions()
	bad.Threshold = -1
	if _, err := r.Execute(ctx, m, raw, Options{Layout: bad}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad options error = %v", err)
	}
}

func TestExecuteHashesManifestWithoutRaw(t *testing.T) {
	m, _ := readManifest(t)
	r := quietRunner(nil)

	res, err := r.Execute(context.Background(), m, nil, Options{Layout: masonry.DefaultOptions()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.ManifestHash) != 64 {
		t.Errorf("ManifestHash = %q", res.ManifestHash)
	}
}
