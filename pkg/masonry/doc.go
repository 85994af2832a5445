// Package masonry distributes variable-height items into equal-width columns
// and keeps the column bottoms level.
//
// # Overview
//
// An [Engine] manages an ordered set of [Item] handles. It derives a column
// count from the container width, deals the items round-robin into the
// columns, and then levels the bottom edge by repeatedly moving the trailing
// item of the tallest column onto the shortest one:
//
//	columns = max(1, floor(containerWidth / MinItemWidth))
//	item p  -> column p mod columns
//
// The engine never measures anything itself. Widths and heights come from a
// [Measurer] supplied by the caller; package measure has a reference
// implementation backed by declared heights.
//
// # Leveling
//
// A balancing pass stops as soon as the move of the tallest column's last
// item would either make the shortest column at least as tall as the
// tallest one, or shrink the gap by less than [Options.Threshold]. Every
// move raises the shortest column and lowers the tallest, so the minimum
// height never decreases and an item that has moved once can never move
// again in the same pass. A pass therefore makes at most one move per item;
// the engine enforces that bound and reports [errors.ErrCodeConvergence]
// when a measurer breaks it.
//
// # Incremental updates
//
// [Engine.Add] places a new item on the currently shortest column and
// [Engine.Remove] detaches an item from wherever it sits. Neither
// redistributes the remaining items; both only re-run the balancer.
// [Engine.Refill] redistributes everything, and only when the column count
// actually changes.
//
// # Notifications
//
// Observers registered through [Options.Observers] or [Engine.Subscribe]
// receive [Event] values synchronously: start and ready once, and
// fill/filled, add/added, remove/removed around each operation, plus
// layout-changed whenever item placement changed. Observers must not call
// back into the engine; such calls fail with [errors.ErrCodeReentrant].
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Callers serialize operations,
// typically on a UI or event loop. [Instances] is safe for concurrent
// lookup but dispatches into engines under its own lock.
//
// [errors.ErrCodeConvergence]: github.com/matzehuels/mosaicflow/pkg/errors.ErrCodeConvergence
// [errors.ErrCodeReentrant]: github.com/matzehuels/mosaicflow/pkg/errors.ErrCodeReentrant
package masonry
