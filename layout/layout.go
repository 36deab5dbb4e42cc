// Package layout computes suggested positions for a task tree. It never
// creates visual elements; callers draw at the positions it returns.
package layout

import (
	"taskgrapher/geometry"
	"taskgrapher/task"
)

// Placer suggests an initial position for every node reachable from root.
type Placer interface {
	Place(g *task.Graph, root *task.Node) map[task.ID]geometry.Point

	// ChildOffset returns where a newly added child should appear relative
	// to its parent, given how many children the parent already had and
	// the current view scale.
	ChildOffset(index int, scale float64) geometry.Point
}
