package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	mfio "github.com/matzehuels/mosaicflow/pkg/io"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

const galleryManifest = `{
  "width": 720,
  "items": [
    {"id": "a", "height": 300, "label": "Harbor"},
    {"id": "b", "height": 120},
    {"id": "c", "height": 180},
    {"id": "d", "height": 90}
  ]
}`

func TestLayoutCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "gallery.json")
	if err := os.WriteFile(input, []byte(galleryManifest), 0644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"layout", input, "-f", "json,svg", "--no-cache", "--threshold", "0"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("layout: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "gallery.layout.json"))
	if err != nil {
		t.Fatalf("json output: %v", err)
	}
	defer f.Close()
	snap, err := mfio.ReadSnapshot(f)
	if err != nil {
		t.Fatal(err)
	}
	if snap.ColumnCount() != 3 {
		t.Errorf("columns = %d, want 3", snap.ColumnCount())
	}
	if snap.Threshold != 0 {
		t.Errorf("threshold = %v, want flag value 0", snap.Threshold)
	}
	if _, err := os.Stat(filepath.Join(dir, "gallery.layout.svg")); err != nil {
		t.Errorf("svg output: %v", err)
	}
}

func TestLayoutCommandRejectsNegativeWidth(t *testing.T) {
	isolate(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"layout", "missing.json", "--width", "-1"})
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for negative width")
	}
}

func TestLayoutOverrides(t *testing.T) {
	newCmd := func(args ...string) (*cobra.Command, *layoutFlags) {
		var flags layoutFlags
		cmd := &cobra.Command{Use: "layout"}
		cmd.Flags().Float64Var(&flags.minItemWidth, "min-item-width", 0, "")
		cmd.Flags().Float64Var(&flags.threshold, "threshold", 0, "")
		cmd.Flags().BoolVar(&flags.noLevel, "no-level", false, "")
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		return cmd, &flags
	}

	tests := []struct {
		name string
		args []string
		want masonry.Options
	}{
		{
			name: "no flags keep base",
			want: masonry.Options{MinItemWidth: 200, Threshold: 30, LevelBottom: true},
		},
		{
			name: "explicit zero threshold wins",
			args: []string{"--threshold", "0"},
			want: masonry.Options{MinItemWidth: 200, Threshold: 0, LevelBottom: true},
		},
		{
			name: "all flags",
			args: []string{"--min-item-width", "90", "--threshold", "5", "--no-level"},
			want: masonry.Options{MinItemWidth: 90, Threshold: 5, LevelBottom: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, flags := newCmd(tt.args...)
			got := masonry.Options{MinItemWidth: 200, Threshold: 30, LevelBottom: true}
			overridesFrom(cmd, *flags).apply(&got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "items.toml")
	artifacts := map[string][]byte{
		formatJSON: []byte("{}"),
		formatText: []byte("text"),
	}

	tests := []struct {
		name    string
		output  string
		formats []string
		want    []string
	}{
		{
			name:    "default base path",
			formats: []string{formatJSON, formatText},
			want:    []string{filepath.Join(dir, "items.layout.json"), filepath.Join(dir, "items.layout.txt")},
		},
		{
			name:    "single format exact path",
			output:  filepath.Join(dir, "out.data"),
			formats: []string{formatJSON},
			want:    []string{filepath.Join(dir, "out.data")},
		},
		{
			name:    "several formats share base",
			output:  filepath.Join(dir, "render.svg"),
			formats: []string{formatJSON, formatText},
			want:    []string{filepath.Join(dir, "render.json"), filepath.Join(dir, "render.txt")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths, err := writeArtifacts(input, tt.output, tt.formats, artifacts)
			if err != nil {
				t.Fatalf("writeArtifacts() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, paths); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
			for _, p := range paths {
				if _, err := os.Stat(p); err != nil {
					t.Errorf("stat %s: %v", p, err)
				}
			}
		})
	}
}
