package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

// WriteSnapshot encodes s as indented JSON.
func WriteSnapshot(w io.Writer, s masonry.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSnapshot writes s to a JSON file at path.
func ExportSnapshot(s masonry.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSnapshot(f, s)
}

// ReadSnapshot decodes a JSON snapshot from r.
func ReadSnapshot(r io.Reader) (masonry.Snapshot, error) {
	var s masonry.Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return masonry.Snapshot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	return s, nil
}
