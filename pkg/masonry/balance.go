package masonry

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/observability"
)

// balancer levels the bottom edge of a set of columns.
type balancer struct {
	measure   checked
	threshold float64
	enabled   bool
	logger    *log.Logger
}

// move is one planned transfer of a trailing item.
type move struct {
	from, to int
	item     *Item
	gap      float64 // height gap between from and to after the move
}

// next plans the next move for the given heights, or reports false when the
// columns have converged.
func (b balancer) next(cols []*Column, heights []float64) (move, bool, error) {
	lowest, highest := extremes(heights)
	if lowest == highest {
		return move{}, false, nil
	}

	last := cols[highest].Last()
	if last == nil {
		return move{}, false, nil
	}
	moved, err := b.measure.itemHeight(last)
	if err != nil {
		return move{}, false, err
	}

	newLowest := heights[lowest] + moved
	if newLowest >= heights[highest] {
		return move{}, false, nil
	}
	gap := heights[highest] - newLowest
	if gap < b.threshold {
		return move{}, false, nil
	}
	return move{from: highest, to: lowest, item: last, gap: gap}, true, nil
}

// level runs moves until convergence and returns how many it made. budget
// caps the number of moves; exceeding it means the measurer reported
// heights inconsistent with the items it was asked about.
func (b balancer) level(cols []*Column, budget int) (moves int, err error) {
	if !b.enabled || len(cols) < 2 {
		return 0, nil
	}

	start := time.Now()
	defer func() {
		observability.Layout().OnLevel(len(cols), moves, time.Since(start), err)
	}()

	for {
		heights, err := b.measure.columnHeights(cols)
		if err != nil {
			return moves, err
		}
		m, ok, err := b.next(cols, heights)
		if err != nil {
			return moves, err
		}
		if !ok {
			return moves, nil
		}
		if moves >= budget {
			return moves, errors.New(errors.ErrCodeConvergence,
				"leveling did not converge after %d moves over %d columns", moves, len(cols))
		}

		cols[m.from].pop()
		cols[m.to].push(m.item)
		moves++
		b.logger.Debug("moved item", "item", m.item.ID, "from", m.from, "to", m.to, "gap", m.gap)
	}
}
