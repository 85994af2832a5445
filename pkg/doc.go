// Package pkg provides the core libraries for Mosaicflow masonry layouts.
//
// # Overview
//
// Mosaicflow arranges variable-height items into equal-width columns. Items
// are dealt round-robin, then the column bottoms are leveled by moving the
// last item of the tallest column to the shortest one while that narrows the
// gap by at least a threshold. The pkg directory is organized into:
//
//  1. [masonry] - The layout engine (columns, fill, leveling, events)
//  2. [io] - Item manifests (JSON, TOML) and snapshot files
//  3. [render] - SVG and terminal renderings of snapshots
//  4. [pipeline] - Orchestration (manifest → layout → render) with caching
//  5. [cache], [store] - Layout cache and snapshot persistence backends
//
// # Architecture
//
// The typical data flow through Mosaicflow:
//
//	Item manifest (JSON/TOML)
//	         ↓
//	    [io] package (decode + validate, build items and measurer)
//	         ↓
//	    [masonry] package (fill columns + level bottoms)
//	         ↓
//	    [render] package (SVG, text)
//	         ↓
//	    JSON snapshot / SVG / terminal output
//
// # Quick Start
//
// Lay out three items in a 720-wide container:
//
//	import (
//	    "github.com/matzehuels/mosaicflow/pkg/masonry"
//	    "github.com/matzehuels/mosaicflow/pkg/masonry/measure"
//	    "github.com/matzehuels/mosaicflow/pkg/render"
//	)
//
//	m := measure.NewFixed(720)
//	items := []*masonry.Item{m.Item("a", 300), m.Item("b", 120), m.Item("c", 180)}
//
//	e, _ := masonry.New(m, items, masonry.DefaultOptions())
//	snap, _ := e.Snapshot()
//	svg := render.SVG(snap)
//
// # Main Packages
//
// [masonry] - The engine. [masonry.New] fills and levels on construction;
// [masonry.Engine.Refill], Add, Remove and Empty keep the placement current
// and notify observers. [masonry.Instances] tracks one engine per container.
//
// [masonry/measure] - Measurers: declared heights ([measure.Fixed]) or
// callbacks ([measure.Funcs]).
//
// [io] - Manifest decoding with unknown-field rejection, plus snapshot
// import and export.
//
// [render] - Hand-written SVG and lipgloss terminal output.
//
// [pipeline] - Layout pipeline shared by the CLI and the HTTP service.
// Layouts are cached by manifest hash and placement options.
//
// [cache] - Layout cache backends: file (CLI), Redis (service), null.
//
// [store] - Snapshot persistence: file (single host), MongoDB (service).
//
// [errors] - Coded errors shared by the engine, CLI and HTTP service.
//
// [observability] - Hooks for layout, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/masonry/...            # Specific package
//	go test -run Example                 # Examples only
//
// [masonry]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/masonry
// [masonry/measure]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/masonry/measure
// [io]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/mosaicflow/pkg/observability
package pkg
