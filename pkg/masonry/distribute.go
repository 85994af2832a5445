package masonry

import "math"

// columnCount derives the number of columns for a container width. The
// result is never below one.
func columnCount(width, minItemWidth float64) int {
	if minItemWidth <= 0 {
		return 1
	}
	n := math.Floor(width / minItemWidth)
	if n < 1 || math.IsNaN(n) {
		return 1
	}
	if n > maxColumns {
		return maxColumns
	}
	return int(n)
}

// maxColumns bounds the column count for absurd width/min-width ratios.
const maxColumns = 4096

// fillAll deals items round-robin over the live columns, item p going to
// column p mod N, then deletes the drained pending columns. The result
// depends only on the item order and the column count.
func fillAll(items []*Item, set *columnSet) {
	set.clearItems()
	cols := set.active()
	n := len(cols)
	for p, it := range items {
		cols[p%n].push(it)
	}
	set.prune()
}
