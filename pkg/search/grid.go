package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Grid maps a hyperparameter name to its candidate values. An empty grid
// means a single default configuration.
type Grid map[string][]float64

// Params is one hyperparameter combination drawn from a Grid.
type Params map[string]float64

// String renders parameters in sorted key order, e.g. {C: 10}.
func (p Params) String() string {
	if len(p) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, strconv.FormatFloat(p[k], 'g', -1, 64))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Combinations enumerates the cartesian product of the grid in a fixed
// order (keys sorted, values in declaration order). An empty grid yields
// exactly one empty combination.
func (g Grid) Combinations() []Params {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []Params{{}}
	for _, k := range keys {
		next := make([]Params, 0, len(combos)*len(g[k]))
		for _, base := range combos {
			for _, v := range g[k] {
				p := make(Params, len(base)+1)
				for bk, bv := range base {
					p[bk] = bv
				}
				p[k] = v
				next = append(next, p)
			}
		}
		combos = next
	}
	return combos
}
