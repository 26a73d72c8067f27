package services

import (
	"cmp"
	"iter"
	"slices"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/pallet"
)

// DefaultTopN is the number of pallets reported by TopNLongestShelfLife when the caller
// has no preference.
const DefaultTopN = 3

// ShelfLifeAnalyzer is a domain service answering the two warehouse reports over a
// fully loaded snapshot of pallets with their boxes.
//
// Key responsibilities:
//   - Grouping pallets by their derived expire date
//   - Selecting the pallets whose boxes stay fresh the longest
//
// Business rules:
//   - Groups are emitted in ascending expire date order
//   - Inside a group pallets are ordered by ascending weight
//   - Ties keep the order of the snapshot (stable sorting)
//   - Empty pallets take part in grouping under kernel.MaxDate but never in the top-N report
//
// Example usage:
//
//	analyzer := services.NewShelfLifeAnalyzer()
//	for expire, group := range analyzer.GroupPalletsByExpiration(pallets) {
//	    fmt.Println(expire, len(group))
//	}
//	top := analyzer.TopNLongestShelfLife(pallets, services.DefaultTopN)
type ShelfLifeAnalyzer struct{}

// NewShelfLifeAnalyzer creates a new ShelfLifeAnalyzer instance.
func NewShelfLifeAnalyzer() ShelfLifeAnalyzer {
	return ShelfLifeAnalyzer{}
}

// GroupPalletsByExpiration groups pallets by their derived expire date.
//
// The sequence is lazy: sorting happens when iteration starts, on a private copy of
// the input, so the caller's slice is never reordered. Each yielded slice is owned by
// the caller.
//
// Parameters:
//   - pallets: Snapshot with every pallet's boxes populated
//
// Returns:
//   - iter.Seq2[kernel.Date, []*pallet.Pallet]: expire date and its pallets, ascending by date
//
// Example:
//
//	for expire, group := range analyzer.GroupPalletsByExpiration(pallets) {
//	    fmt.Printf("Expires: %s\n", expire)
//	    for _, p := range group {
//	        fmt.Printf("  Pallet %d, weight: %d\n", p.ID(), p.Weight())
//	    }
//	}
func (a ShelfLifeAnalyzer) GroupPalletsByExpiration(pallets []*pallet.Pallet) iter.Seq2[kernel.Date, []*pallet.Pallet] {
	return func(yield func(kernel.Date, []*pallet.Pallet) bool) {
		sorted := slices.Clone(pallets)
		slices.SortStableFunc(sorted, func(x, y *pallet.Pallet) int {
			return cmp.Or(
				x.ExpireDate().Compare(y.ExpireDate()),
				cmp.Compare(x.Weight(), y.Weight()),
			)
		})

		for start := 0; start < len(sorted); {
			key := sorted[start].ExpireDate()
			end := start + 1
			for end < len(sorted) && sorted[end].ExpireDate().IsEqual(key) {
				end++
			}
			if !yield(key, slices.Clone(sorted[start:end])) {
				return
			}
			start = end
		}
	}
}

// TopNLongestShelfLife returns up to n pallets with the latest expire dates, ordered by
// ascending volume.
//
// Selection algorithm:
//   - Drops pallets without boxes
//   - Stable sort by expire date, latest first
//   - Takes the first n
//   - Stable sort of the selection by volume, smallest first
//
// When several pallets share the expire date at the cut-off, the ones met first in the
// snapshot are selected.
//
// Parameters:
//   - pallets: Snapshot with every pallet's boxes populated
//   - n: Maximum number of pallets to return; n <= 0 yields an empty result
//
// Returns:
//   - []*pallet.Pallet: Selected pallets, never nil
func (a ShelfLifeAnalyzer) TopNLongestShelfLife(pallets []*pallet.Pallet, n int) []*pallet.Pallet {
	if n <= 0 {
		return []*pallet.Pallet{}
	}

	candidates := make([]*pallet.Pallet, 0, len(pallets))
	for _, p := range pallets {
		if p.HasBoxes() {
			candidates = append(candidates, p)
		}
	}

	slices.SortStableFunc(candidates, func(x, y *pallet.Pallet) int {
		return y.ExpireDate().Compare(x.ExpireDate())
	})

	top := candidates[:min(n, len(candidates))]
	slices.SortStableFunc(top, func(x, y *pallet.Pallet) int {
		return cmp.Compare(x.Volume(), y.Volume())
	})

	return top
}
