package engine

import (
	"slices"

	"github.com/idilsaglam/checklist/internal/model"
)

// DisplaySort returns a copy of items with incomplete items first.
// Within each group the stored order is kept.
func DisplaySort(items []model.Item) []model.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b model.Item) int {
		switch {
		case a.Complete == b.Complete:
			return 0
		case a.Complete:
			return 1
		default:
			return -1
		}
	})
	return out
}

// Stats counts completed and pending items.
func Stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Complete {
			done++
		} else {
			pending++
		}
	}
	return
}
