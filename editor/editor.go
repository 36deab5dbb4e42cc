// Package editor keeps the visual state of a task graph in lockstep with
// the graph itself.
//
// An Editor owns the mapping between task nodes and the elements drawn for
// them on a diagram.Surface: one marker and one label per drawn node, one
// line per drawn parent→child edge, and a cached copy of every position so
// moves never have to query the surface. Drag, pan and zoom update the
// cache and the surface together. Structural edits (AddChild,
// DeleteSubtree) update the graph, the cache and the surface together.
//
// All methods run on the caller's goroutine and an Editor must not be used
// concurrently.
package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"taskgrapher/diagram"
	"taskgrapher/geometry"
	"taskgrapher/layout"
	"taskgrapher/task"
)

// Defaults for a new Editor.
const (
	DefaultNodeRadius = 30.0
	DefaultNearest    = 4
)

var (
	// ErrInconsistent marks a broken usage contract. Editor panics with an
	// error wrapping it; callers are not expected to recover.
	ErrInconsistent = errors.New("editor state inconsistent")

	// ErrInvalidZoom is returned for a zoom factor that is not a positive
	// finite number.
	ErrInvalidZoom = errors.New("zoom factor must be positive and finite")

	// ErrUnknownNode is returned when a node does not belong to the
	// editor's graph.
	ErrUnknownNode = errors.New("node not in graph")
)

// Visual is the drawn state of one node.
type Visual struct {
	Pos    geometry.Point
	Marker diagram.Handle
	Label  diagram.Handle
}

// Endpoints names the two ends of a drawn edge.
type Endpoints struct {
	Parent task.ID
	Child  task.ID
}

type handleSet map[diagram.Handle]struct{}

// Editor is the view model for one task graph drawn on one surface.
type Editor struct {
	graph   *task.Graph
	surface diagram.Surface
	placer  layout.Placer
	logger  *slog.Logger

	nodeRadius float64
	nearest    int
	policy     DeletePolicy
	scale      float64

	nodes       map[task.ID]*task.Node
	visuals     map[task.ID]*Visual
	edges       map[diagram.Handle]geometry.Segment
	endpoints   map[diagram.Handle]Endpoints
	childEdges  map[task.ID]handleSet
	parentEdges map[task.ID]handleSet
	owners      map[diagram.Handle]task.ID

	drag *selection

	contextTarget task.ID
	contextHit    bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger for structural events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNodeRadius sets the marker radius at scale 1.
func WithNodeRadius(r float64) Option {
	return func(e *Editor) {
		if r > 0 {
			e.nodeRadius = r
		}
	}
}

// WithNearest sets how many nearby elements a hit test inspects.
func WithNearest(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.nearest = n
		}
	}
}

// WithDeletePolicy selects how DeleteSubtree treats shared descendants.
func WithDeletePolicy(p DeletePolicy) Option {
	return func(e *Editor) { e.policy = p }
}

// WithPlacer sets the layout used by DrawTree and AddChild.
func WithPlacer(p layout.Placer) Option {
	return func(e *Editor) {
		if p != nil {
			e.placer = p
		}
	}
}

// New creates an Editor for g drawing on s.
func New(g *task.Graph, s diagram.Surface, opts ...Option) *Editor {
	e := &Editor{
		graph:       g,
		surface:     s,
		placer:      layout.NewPolar(800, 600),
		logger:      slog.New(slog.DiscardHandler),
		nodeRadius:  DefaultNodeRadius,
		nearest:     DefaultNearest,
		policy:      PreserveShared,
		scale:       1,
		nodes:       make(map[task.ID]*task.Node),
		visuals:     make(map[task.ID]*Visual),
		edges:       make(map[diagram.Handle]geometry.Segment),
		endpoints:   make(map[diagram.Handle]Endpoints),
		childEdges:  make(map[task.ID]handleSet),
		parentEdges: make(map[task.ID]handleSet),
		owners:      make(map[diagram.Handle]task.ID),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph being edited.
func (e *Editor) Graph() *task.Graph { return e.graph }

// Scale returns the running zoom factor.
func (e *Editor) Scale() float64 { return e.scale }

// Radius returns the marker radius at the current scale.
func (e *Editor) Radius() float64 { return e.nodeRadius * e.scale }

// Policy returns the delete policy.
func (e *Editor) Policy() DeletePolicy { return e.policy }

// Register adds n to the set of nodes known to the view. Registering the
// same node twice is a no-op; registering a different node under an id
// already in use panics.
func (e *Editor) Register(n *task.Node) {
	if known, ok := e.nodes[n.ID()]; ok {
		if known != n {
			inconsistent("node %d registered twice with different instances", n.ID())
		}
		return
	}
	e.nodes[n.ID()] = n
}

// RegisterSubtree registers root and every node reachable from it.
func (e *Editor) RegisterSubtree(root *task.Node) {
	sub := e.graph.Subtree(root)
	for _, n := range sub {
		e.Register(n)
	}
	e.logger.Debug("registered subtree", "node_id", root.ID(), "count", len(sub))
}

// Lookup returns a registered node.
func (e *Editor) Lookup(id task.ID) (*task.Node, bool) {
	n, ok := e.nodes[id]
	return n, ok
}

// Registered returns the number of registered nodes.
func (e *Editor) Registered() int { return len(e.nodes) }

// Visual returns the drawn state of a node.
func (e *Editor) Visual(id task.ID) (Visual, bool) {
	v, ok := e.visuals[id]
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Position returns a drawn node's position.
func (e *Editor) Position(id task.ID) (geometry.Point, bool) {
	v, ok := e.visuals[id]
	if !ok {
		return geometry.Point{}, false
	}
	return v.Pos, true
}

// Drawn reports whether a node has visuals.
func (e *Editor) Drawn(id task.ID) bool {
	_, ok := e.visuals[id]
	return ok
}

// Edge returns the cached segment and endpoints of a drawn edge.
func (e *Editor) Edge(h diagram.Handle) (geometry.Segment, Endpoints, bool) {
	seg, ok := e.edges[h]
	if !ok {
		return geometry.Segment{}, Endpoints{}, false
	}
	return seg, e.endpoints[h], true
}

// EdgeBetween returns the handle of the drawn edge parent→child.
func (e *Editor) EdgeBetween(parent, child task.ID) (diagram.Handle, bool) {
	for h := range e.childEdges[parent] {
		if e.endpoints[h].Child == child {
			return h, true
		}
	}
	return diagram.None, false
}

// EdgeCount returns the number of drawn edges.
func (e *Editor) EdgeCount() int { return len(e.edges) }

// DrawNode creates the marker and label for n centred on p and arms the
// marker's context trigger. n is registered if it was not already. Drawing
// a node twice panics.
func (e *Editor) DrawNode(n *task.Node, p geometry.Point) {
	e.Register(n)
	id := n.ID()
	if _, ok := e.visuals[id]; ok {
		inconsistent("node %d drawn twice", id)
	}
	marker := e.surface.CreateMarker(geometry.Around(p, e.Radius()))
	label := e.surface.CreateLabel(p, n.Value())
	e.surface.Bind(marker, func() {
		e.contextTarget = id
		e.contextHit = true
	})
	e.visuals[id] = &Visual{Pos: p, Marker: marker, Label: label}
	e.owners[marker] = id
	e.owners[label] = id
}

// DrawEdge draws the edge parent→child. If child is not drawn yet it is
// drawn at parent's position plus offset; otherwise it keeps its position.
// The parent must already be drawn. An edge that is already drawn is not
// drawn again and its handle is returned.
func (e *Editor) DrawEdge(parent, child *task.Node, offset geometry.Point) diagram.Handle {
	pv, ok := e.visuals[parent.ID()]
	if !ok {
		inconsistent("edge from undrawn parent %d", parent.ID())
	}
	if h, ok := e.EdgeBetween(parent.ID(), child.ID()); ok {
		return h
	}
	cv, ok := e.visuals[child.ID()]
	if !ok {
		e.DrawNode(child, pv.Pos.Add(offset))
		cv = e.visuals[child.ID()]
	}

	seg := geometry.Segment{From: pv.Pos, To: cv.Pos}
	h := e.surface.CreateLine(seg)
	e.surface.Lower(h)
	e.edges[h] = seg
	e.endpoints[h] = Endpoints{Parent: parent.ID(), Child: child.ID()}
	addHandle(e.childEdges, parent.ID(), h)
	addHandle(e.parentEdges, child.ID(), h)
	return h
}

// DrawTree draws root and everything reachable from it breadth first,
// using the placer for nodes not yet drawn. Every reachable node and edge
// ends up drawn exactly once.
func (e *Editor) DrawTree(root *task.Node) {
	e.RegisterSubtree(root)
	suggested := e.placer.Place(e.graph, root)

	if !e.Drawn(root.ID()) {
		e.DrawNode(root, suggested[root.ID()])
	}
	visited := map[task.ID]bool{root.ID(): true}
	queue := []*task.Node{root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, child := range e.graph.Children(parent) {
			offset := suggested[child.ID()].Sub(suggested[parent.ID()]).Mul(e.scale)
			e.DrawEdge(parent, child, offset)
			if !visited[child.ID()] {
				visited[child.ID()] = true
				queue = append(queue, child)
			}
		}
	}
	e.logger.Debug("drew tree", "node_id", root.ID(), "nodes", len(visited), "edges", len(e.edges))
}

// OpenContext fires the context trigger of the marker under p and returns
// the node it belongs to.
func (e *Editor) OpenContext(p geometry.Point) (*task.Node, bool) {
	e.contextHit = false
	if !e.surface.Fire(p) || !e.contextHit {
		return nil, false
	}
	n, ok := e.nodes[e.contextTarget]
	return n, ok
}

func addHandle(m map[task.ID]handleSet, id task.ID, h diagram.Handle) {
	set, ok := m[id]
	if !ok {
		set = make(handleSet)
		m[id] = set
	}
	set[h] = struct{}{}
}

func removeHandle(m map[task.ID]handleSet, id task.ID, h diagram.Handle) {
	set, ok := m[id]
	if !ok {
		return
	}
	delete(set, h)
	if len(set) == 0 {
		delete(m, id)
	}
}

func inconsistent(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...)))
}
