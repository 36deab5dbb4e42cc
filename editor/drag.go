package editor

import (
	"maps"
	"slices"

	"taskgrapher/diagram"
	"taskgrapher/geometry"
	"taskgrapher/task"
)

// selection is the working set of one drag gesture.
type selection struct {
	root        task.ID
	nodes       map[task.ID]struct{}
	childEdges  handleSet // both ends move
	parentEdges handleSet // only the child end moves
	last        geometry.Point
}

// BeginDrag hit-tests p and, on a hit, selects the node under it together
// with every drawn descendant. It reports whether a selection was made.
//
// Edges between selected nodes move rigidly with the selection. Edges from
// an unselected parent into the selection move only their child end. For
// a tree the latter are exactly the dragged node's own parent edges.
//
// Calling BeginDrag while a selection is active panics.
func (e *Editor) BeginDrag(p geometry.Point) bool {
	if e.drag != nil {
		inconsistent("drag started while a drag on node %d is active", e.drag.root)
	}
	hit, ok := e.HitTest(p)
	if !ok {
		return false
	}

	sel := &selection{
		root:        hit.ID(),
		nodes:       make(map[task.ID]struct{}),
		childEdges:  make(handleSet),
		parentEdges: make(handleSet),
		last:        p,
	}
	for _, n := range e.graph.Subtree(hit) {
		if e.Drawn(n.ID()) {
			sel.nodes[n.ID()] = struct{}{}
		}
	}
	for id := range sel.nodes {
		for h := range e.childEdges[id] {
			sel.childEdges[h] = struct{}{}
		}
		for h := range e.parentEdges[id] {
			if _, inside := sel.nodes[e.endpoints[h].Parent]; !inside {
				sel.parentEdges[h] = struct{}{}
			}
		}
	}
	for id := range sel.nodes {
		e.surface.Highlight(e.visuals[id].Marker, true)
	}
	e.drag = sel
	e.logger.Debug("drag started", "node_id", hit.ID(), "nodes", len(sel.nodes),
		"child_edges", len(sel.childEdges), "parent_edges", len(sel.parentEdges))
	return true
}

// ContinueDrag moves the selection by the distance from the previous drag
// point to p. Without an active selection it does nothing.
func (e *Editor) ContinueDrag(p geometry.Point) {
	sel := e.drag
	if sel == nil {
		return
	}
	delta := p.Sub(sel.last)
	sel.last = p
	if delta.IsZero() {
		return
	}

	for id := range sel.nodes {
		v := e.visuals[id]
		v.Pos = v.Pos.Add(delta)
		e.surface.Move(v.Marker, delta)
		e.surface.Move(v.Label, delta)
	}
	for h := range sel.childEdges {
		e.setEdge(h, e.edges[h].Translate(delta))
	}
	for h := range sel.parentEdges {
		seg := e.edges[h]
		seg.To = seg.To.Add(delta)
		e.setEdge(h, seg)
	}
}

// EndDrag clears the selection. It is safe to call at any time.
func (e *Editor) EndDrag() {
	if e.drag == nil {
		return
	}
	for id := range e.drag.nodes {
		if v, ok := e.visuals[id]; ok {
			e.surface.Highlight(v.Marker, false)
		}
	}
	e.logger.Debug("drag ended", "node_id", e.drag.root)
	e.drag = nil
}

// Dragging reports whether a selection is active.
func (e *Editor) Dragging() bool { return e.drag != nil }

// Selection returns the ids of the selected nodes in ascending order.
func (e *Editor) Selection() []task.ID {
	if e.drag == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(e.drag.nodes))
}

// SelectedEdges returns the edges that move rigidly and the edges that
// move only at their child end during the current drag.
func (e *Editor) SelectedEdges() (rigid, childEnd []diagram.Handle) {
	if e.drag == nil {
		return nil, nil
	}
	return slices.Sorted(maps.Keys(e.drag.childEdges)), slices.Sorted(maps.Keys(e.drag.parentEdges))
}

func (e *Editor) setEdge(h diagram.Handle, seg geometry.Segment) {
	e.edges[h] = seg
	e.surface.SetCoords(h, seg.Coords()...)
}
