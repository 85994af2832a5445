package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

func sampleSnapshot() *masonry.Snapshot {
	return &masonry.Snapshot{
		ContainerWidth: 480,
		MinItemWidth:   240,
		Threshold:      40,
		LevelBottom:    true,
		ColumnClass:    masonry.DefaultColumnClass,
		Columns: []masonry.ColumnSnapshot{
			{Index: 0, Share: 50, Height: 100, Items: []masonry.ItemSnapshot{{ID: "a", Height: 100}}},
			{Index: 1, Share: 50, Height: 80, Items: []masonry.ItemSnapshot{{ID: "b", Height: 80}}},
		},
		Items: []string{"a", "b"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close(ctx)

	snap := sampleSnapshot()
	id, err := s.Save(ctx, snap)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" || snap.ID != id {
		t.Fatalf("Save assigned id %q, snapshot has %q", id, snap.ID)
	}

	got, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("loaded snapshot mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestFileStoreKeepsGivenID(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	snap := sampleSnapshot()
	snap.ID = "gallery"
	id, err := s.Save(ctx, snap)
	if err != nil || id != "gallery" {
		t.Fatalf("Save = %q, %v; want gallery", id, err)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	_, err := s.Load(ctx, "missing")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := NewFileStore(t.TempDir())

	for _, id := range []string{"../etc/passwd", "a/b", ""} {
		if _, err := s.Load(ctx, id); !errors.Is(err, errors.ErrCodeInvalidID) {
			t.Errorf("Load(%q) error = %v, want %s", id, err, errors.ErrCodeInvalidID)
		}
	}
	snap := sampleSnapshot()
	snap.ID = "x/y"
	if _, err := s.Save(ctx, snap); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("Save(x/y) error = %v, want %s", err, errors.ErrCodeInvalidID)
	}
	if _, err := s.Save(ctx, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, "bad"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(bad) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFileStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	for _, id := range []string{"b", "a", "c"} {
		snap := sampleSnapshot()
		snap.ID = id
		if _, err := s.Save(ctx, snap); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ids, _ = s.List(ctx)
	if diff := cmp.Diff([]string{"a", "c"}, ids); diff != "" {
		t.Errorf("List after Delete mismatch (-want +got):\n%s", diff)
	}
}

func TestNewMongoStoreValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := NewMongoStore(ctx, "mongodb://localhost:27017", ""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("empty db error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
	if _, err := NewMongoStore(ctx, "bogus://host", "mosaicflow"); !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("bad uri error = %v, want %s", err, errors.ErrCodeStorage)
	}
}
