package layout

import (
	"slices"

	"github.com/matzehuels/riskflow/pkg/dataset"
)

// Crossings counts pairs of ribbons that cross between adjacent layers
// when nodes are stacked in input order, as [Build] stacks them. Links
// that skip a layer are not counted. Ribbons sharing an endpoint never
// cross.
//
// Two ribbons (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and
// pos(v1) > pos(v2), so the count is the number of inversions of target
// positions once ribbons are sorted by source position. A Fenwick tree
// counts them in O(E log V) per layer pair.
func Crossings(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	pos := make(map[int]int, ds.NodeCount())
	for l := range ds.LayerCount() {
		for i, id := range ds.Layer(l) {
			pos[id] = i
		}
	}

	type ribbon struct{ upper, lower int }
	byLayer := make([][]ribbon, ds.LayerCount())
	for _, link := range ds.Links() {
		src, _ := ds.Node(link.Source)
		dst, _ := ds.Node(link.Target)
		if dst.Layer != src.Layer+1 {
			continue
		}
		byLayer[src.Layer] = append(byLayer[src.Layer], ribbon{pos[link.Source], pos[link.Target]})
	}

	total := 0
	for l, ribbons := range byLayer {
		if len(ribbons) < 2 {
			continue
		}
		slices.SortFunc(ribbons, func(a, b ribbon) int {
			if a.upper != b.upper {
				return a.upper - b.upper
			}
			return a.lower - b.lower
		})

		fenwick := make([]int, len(ds.Layer(l+1))+1)
		seen := 0
		for _, r := range ribbons {
			atOrAbove := 0
			for q := r.lower + 1; q > 0; q -= q & -q {
				atOrAbove += fenwick[q]
			}
			total += seen - atOrAbove
			for q := r.lower + 1; q < len(fenwick); q += q & -q {
				fenwick[q]++
			}
			seen++
		}
	}
	return total
}
