package task

import (
	"sort"

	"taskgrapher/clock"
)

// Graph is the arena that owns every node and assigns ids.
//
// A Graph is not safe for concurrent use; all mutation happens on the
// goroutine that handles input events.
type Graph struct {
	clock  clock.Clock
	nextID ID
	nodes  map[ID]*Node

	maxChildren int
	maxParents  int
}

// Option configures a Graph.
type Option func(*Graph)

// WithClock sets the time source used for creation timestamps.
func WithClock(c clock.Clock) Option {
	return func(g *Graph) { g.clock = c }
}

// WithLimits sets the default fan-out and fan-in caps given to new nodes.
// Values below 1 leave the corresponding default in place.
func WithLimits(maxChildren, maxParents int) Option {
	return func(g *Graph) {
		if maxChildren >= 1 {
			g.maxChildren = maxChildren
		}
		if maxParents >= 1 {
			g.maxParents = maxParents
		}
	}
}

// NewGraph creates an empty graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		clock:       clock.Real(),
		nextID:      1,
		nodes:       make(map[ID]*Node),
		maxChildren: DefaultMaxChildren,
		maxParents:  DefaultMaxParents,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New creates a node labelled value. The id is consumed only when the
// node is actually created.
func (g *Graph) New(value string, opts ...NodeOption) (*Node, error) {
	n := &Node{
		maxChildren: g.maxChildren,
		maxParents:  g.maxParents,
	}
	if _, err := n.SetValue(value); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	n.id = g.nextID
	g.nextID++
	n.created = g.clock.Now()
	g.nodes[n.id] = n
	return n, nil
}

// Lookup returns the node with the given id.
func (g *Graph) Lookup(id ID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Owns reports whether n is a live node of this graph.
func (g *Graph) Owns(n *Node) bool {
	if n == nil {
		return false
	}
	return g.nodes[n.id] == n
}

// Len returns the number of live nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns every live node ordered by id.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
	return nodes
}

// Roots returns the live nodes that have no parents, ordered by id.
func (g *Graph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.Nodes() {
		if len(n.parents) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// Children resolves n's children in attach order.
func (g *Graph) Children(n *Node) []*Node { return g.resolve(n.children) }

// Parents resolves n's parents in attach order.
func (g *Graph) Parents(n *Node) []*Node { return g.resolve(n.parents) }

func (g *Graph) resolve(ids []ID) []*Node {
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// HasRoomForChild reports whether parent is below its fan-out cap.
func (g *Graph) HasRoomForChild(parent *Node) bool {
	return g.Owns(parent) && len(parent.children) < parent.maxChildren
}

// Attach makes child a child of parent.
//
// It returns true when the edge exists afterwards: either it was added, or
// child was already attached. It returns false, changing nothing, when
// parent is at its fan-out cap, child is at its fan-in cap, either node is
// not live in this graph, or parent and child are the same node.
func (g *Graph) Attach(parent, child *Node) bool {
	if !g.Owns(parent) || !g.Owns(child) || parent == child {
		return false
	}
	if parent.HasChild(child.id) {
		return true
	}
	if len(parent.children) >= parent.maxChildren {
		return false
	}
	if len(child.parents) >= child.maxParents {
		return false
	}
	parent.children = append(parent.children, child.id)
	child.parents = append(child.parents, parent.id)
	return true
}

// Unlink removes the single edge parent→child. It reports whether an edge
// was removed.
func (g *Graph) Unlink(parent, child *Node) bool {
	if parent == nil || child == nil || !parent.HasChild(child.id) {
		return false
	}
	parent.children = without(parent.children, child.id)
	child.parents = without(child.parents, parent.id)
	return true
}

// Detach severs every edge touching n, in both directions. The node stays
// in the arena. Calling Detach again is a no-op.
func (g *Graph) Detach(n *Node) {
	if n == nil {
		return
	}
	for _, pid := range n.parents {
		if p, ok := g.nodes[pid]; ok {
			p.children = without(p.children, n.id)
		}
	}
	for _, cid := range n.children {
		if c, ok := g.nodes[cid]; ok {
			c.parents = without(c.parents, n.id)
		}
	}
	n.parents = nil
	n.children = nil
}

// Remove detaches n and drops it from the arena. Its id is never reissued.
func (g *Graph) Remove(n *Node) {
	if !g.Owns(n) {
		return
	}
	g.Detach(n)
	delete(g.nodes, n.id)
}
