package editor

import (
	"fmt"

	"taskgrapher/diagram"
	"taskgrapher/task"
)

// AddChild creates a task labelled value under parent.
//
// When parent has no room for another child it returns (nil, false, nil)
// and changes nothing. An invalid label returns the validation error. On
// success the child is registered and, when parent is drawn, drawn at the
// placer's default offset.
//
// An active drag is ended first.
func (e *Editor) AddChild(parent *task.Node, value string) (*task.Node, bool, error) {
	if !e.graph.Owns(parent) {
		return nil, false, fmt.Errorf("%w: %v", ErrUnknownNode, parent)
	}
	e.EndDrag()
	if !e.graph.HasRoomForChild(parent) {
		e.logger.Debug("add child rejected", "node_id", parent.ID(), "children", parent.MaxChildren())
		return nil, false, nil
	}
	index := len(parent.ChildIDs())

	child, err := e.graph.New(value)
	if err != nil {
		return nil, false, err
	}
	if !e.graph.Attach(parent, child) {
		e.graph.Remove(child)
		return nil, false, nil
	}
	e.Register(parent)
	e.Register(child)
	if e.Drawn(parent.ID()) {
		e.DrawEdge(parent, child, e.placer.ChildOffset(index, e.scale))
	}
	e.logger.Debug("added child", "node_id", child.ID(), "parent_id", parent.ID())
	return child, true, nil
}

// DeleteSubtree removes n and its descendants from the view and the graph,
// descendants first. Under PreserveShared a descendant that still has a
// parent outside the deleted set survives, losing only its edges into the
// deleted set. It returns the ids removed, in removal order.
//
// An active drag is ended first.
func (e *Editor) DeleteSubtree(n *task.Node) []task.ID {
	if !e.graph.Owns(n) {
		return nil
	}
	e.EndDrag()

	doomed := e.doomed(n)
	var removed []task.ID
	for _, m := range e.graph.PostOrder(n) {
		if _, ok := doomed[m.ID()]; !ok {
			continue
		}
		e.erase(m.ID())
		e.graph.Remove(m)
		removed = append(removed, m.ID())
	}
	if e.contextHit {
		if _, ok := doomed[e.contextTarget]; ok {
			e.contextHit = false
		}
	}
	e.logger.Debug("deleted subtree", "node_id", n.ID(), "removed", len(removed), "policy", e.policy.String())
	return removed
}

// doomed returns the set of nodes DeleteSubtree removes for root.
func (e *Editor) doomed(root *task.Node) map[task.ID]struct{} {
	set := make(map[task.ID]struct{})
	for _, m := range e.graph.Subtree(root) {
		set[m.ID()] = struct{}{}
	}
	if e.policy == Cascade {
		return set
	}
	for changed := true; changed; {
		changed = false
		for id := range set {
			if id == root.ID() {
				continue
			}
			m, _ := e.graph.Lookup(id)
			for _, pid := range m.ParentIDs() {
				if _, ok := set[pid]; !ok {
					delete(set, id)
					changed = true
					break
				}
			}
		}
	}
	return set
}

// erase drops every visual and map entry for id.
func (e *Editor) erase(id task.ID) {
	if v, ok := e.visuals[id]; ok {
		e.surface.Delete(v.Marker)
		e.surface.Delete(v.Label)
		delete(e.owners, v.Marker)
		delete(e.owners, v.Label)
		delete(e.visuals, id)
	}
	for h := range e.childEdges[id] {
		e.eraseEdge(h)
	}
	for h := range e.parentEdges[id] {
		e.eraseEdge(h)
	}
	delete(e.nodes, id)
}

func (e *Editor) eraseEdge(h diagram.Handle) {
	ep, ok := e.endpoints[h]
	if !ok {
		return
	}
	removeHandle(e.childEdges, ep.Parent, h)
	removeHandle(e.parentEdges, ep.Child, h)
	delete(e.edges, h)
	delete(e.endpoints, h)
	e.surface.Delete(h)
}
