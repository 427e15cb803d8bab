package maze

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// layouts holds the built-in maze layouts, row by row
var layouts = map[string][][]float64{
	// The classic 8x8 maze with its exit in the bottom right corner
	"classic": {
		{0, 1, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 1, 0, 1, 0, 0},
		{0, 0, 0, 1, 1, 0, 1, 0},
		{0, 1, 0, 1, 0, 0, 0, 0},
		{1, 0, 0, 1, 0, 1, 0, 0},
		{0, 0, 0, 1, 0, 1, 1, 1},
		{0, 1, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0},
	},
	"small": {
		{0, 0, 0, 0},
		{1, 1, 0, 1},
		{0, 0, 0, 0},
		{0, 1, 1, 0},
	},
	"open": {
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
}

// Layout returns a copy of a built-in layout by name
func Layout(name string) (*mat.Dense, error) {
	rows, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("layout: no such layout %q", name)
	}

	r, c := len(rows), len(rows[0])
	layout := mat.NewDense(r, c, nil)
	for i, row := range rows {
		layout.SetRow(i, row)
	}
	return layout, nil
}

// Layouts returns the names of all built-in layouts in lexical order
func Layouts() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
