// Package io reads item manifests and reads and writes layout snapshots.
//
// # Manifests
//
// A manifest declares the items to lay out, their heights and optionally the
// container width and layout options. JSON and TOML are accepted:
//
//	{
//	  "width": 960,
//	  "options": {"min_item_width": 240, "threshold": 40},
//	  "items": [
//	    {"id": "hero", "height": 320, "label": "Hero image"},
//	    {"id": "quote", "height": 90}
//	  ]
//	}
//
// The same manifest in TOML:
//
//	width = 960
//
//	[options]
//	min_item_width = 240
//	threshold = 40
//
//	[[items]]
//	id = "hero"
//	height = 320
//	label = "Hero image"
//
//	[[items]]
//	id = "quote"
//	height = 90
//
// Unset options keep the engine defaults. Items without an id receive a
// generated one when the engine admits them.
//
// Use [Import] to read a manifest from a file (the format follows the file
// extension) or [ReadJSON] and [ReadTOML] for readers. [Manifest.Build]
// turns a manifest into engine items and a measurer that answers with the
// declared heights.
//
// # Snapshots
//
// [WriteSnapshot] and [ExportSnapshot] write a [masonry.Snapshot] as indented
// JSON; [ReadSnapshot] reads one back.
package io
