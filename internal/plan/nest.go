package plan

import (
	"fmt"
	"sort"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
)

// NoParent marks a root node.
const NoParent = -1

// Node is one cut in the nesting forest. Parent and Children index into
// Forest.Nodes.
type Node struct {
	Cut      *Cut
	Parent   int
	Children []int
}

// Forest is the containment hierarchy over a set of cuts, stored as an
// arena. Closed cuts come first, largest area first, followed by open cuts
// in their given order.
type Forest struct {
	Nodes []Node
	Roots []int
}

// Depth returns how many ancestors node i has.
func (f *Forest) Depth(i int) int {
	d := 0
	for p := f.Nodes[i].Parent; p != NoParent; p = f.Nodes[p].Parent {
		d++
	}
	return d
}

// Nest builds the containment forest. Each closed cut becomes the child of
// the smallest larger closed cut whose path contains it. Open cuts are
// always roots.
func Nest(cuts []*Cut, opts geom.ContainmentOptions) (*Forest, error) {
	var closed, open []*Cut
	for _, c := range cuts {
		if c.Path.IsClosed() {
			closed = append(closed, c)
		} else {
			open = append(open, c)
		}
	}

	areas := make(map[*Cut]float64, len(closed))
	for _, c := range closed {
		areas[c] = c.Area()
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return areas[closed[i]] > areas[closed[j]]
	})

	f := &Forest{Nodes: make([]Node, 0, len(cuts))}
	for _, c := range closed {
		f.Nodes = append(f.Nodes, Node{Cut: c, Parent: NoParent})
	}
	for _, c := range open {
		f.Nodes = append(f.Nodes, Node{Cut: c, Parent: NoParent})
	}

	for i := 1; i < len(closed); i++ {
		parent := NoParent
		for j := 0; j < i; j++ {
			inside, err := geom.Contains(closed[j].Path, closed[i].Path, opts)
			if err != nil {
				return nil, fmt.Errorf("%w: nesting cut %s: %v", ErrUnplannable, closed[i].ID, err)
			}
			// Later candidates are smaller, so the last hit fits tightest.
			if inside {
				parent = j
			}
		}
		if parent != NoParent {
			f.Nodes[i].Parent = parent
			f.Nodes[parent].Children = append(f.Nodes[parent].Children, i)
		}
	}

	for i, n := range f.Nodes {
		if n.Parent == NoParent {
			f.Roots = append(f.Roots, i)
		}
	}
	return f, nil
}
