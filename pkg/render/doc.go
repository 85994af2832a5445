// Package render draws layout snapshots.
//
// [SVG] produces a standalone SVG document with one rectangle per item,
// stacked in its column. Columns are offset by their width share, so the
// drawing matches what a browser would show for the same layout.
//
//	svg := render.SVG(snap, render.WithGap(8), render.WithLabels(labels))
//
// [Text] draws the columns side by side for terminals using lipgloss. Item
// heights are scaled to lines; the CLI preview uses it to redraw after every
// change.
//
//	fmt.Println(render.Text(snap, 100))
package render
