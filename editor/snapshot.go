package editor

import (
	"maps"
	"slices"

	"taskgrapher/diagram"
	"taskgrapher/geometry"
	"taskgrapher/task"
	"taskgrapher/validation"
)

// Snapshot copies the editor's bookkeeping for validation.
func (e *Editor) Snapshot() validation.Snapshot {
	s := validation.Snapshot{
		Registered:    maps.Clone(e.nodes),
		Positions:     make(map[task.ID]geometry.Point, len(e.visuals)),
		EdgeCoords:    maps.Clone(e.edges),
		EdgeEndpoints: make(map[diagram.Handle]validation.Edge, len(e.endpoints)),
		ChildEdges:    make(map[task.ID][]diagram.Handle, len(e.childEdges)),
		ParentEdges:   make(map[task.ID][]diagram.Handle, len(e.parentEdges)),
	}
	for id, v := range e.visuals {
		s.Positions[id] = v.Pos
	}
	for h, ep := range e.endpoints {
		s.EdgeEndpoints[h] = validation.Edge{Parent: ep.Parent, Child: ep.Child}
	}
	for id, set := range e.childEdges {
		s.ChildEdges[id] = slices.Sorted(maps.Keys(set))
	}
	for id, set := range e.parentEdges {
		s.ParentEdges[id] = slices.Sorted(maps.Keys(set))
	}
	return s
}

// Check validates the editor's bookkeeping against its graph.
func (e *Editor) Check() error {
	return validation.Check(e.Snapshot(), e.graph)
}
