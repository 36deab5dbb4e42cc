package layout

import (
	"slices"

	"taskgrapher/geometry"
	"taskgrapher/task"
)

// Defaults for the vertical layout.
const (
	DefaultSiblingSpacing = 100.0
	DefaultLevelSpacing   = 120.0
)

// Vertical places a task tree top to bottom. Each task sits one row below
// the deepest of its parents, so a task shared by several branches lands
// under all of them. Rows are centred on Origin.X and the root's row is at
// Origin.Y.
type Vertical struct {
	Origin         geometry.Point
	SiblingSpacing float64
	LevelSpacing   float64
}

// NewVertical returns a vertical layout for a width x height viewport with
// the root near the top.
func NewVertical(width, height float64) *Vertical {
	return &Vertical{
		Origin:         geometry.Pt(width/2, height/5),
		SiblingSpacing: DefaultSiblingSpacing,
		LevelSpacing:   DefaultLevelSpacing,
	}
}

// Place returns a position for root and every descendant.
func (v *Vertical) Place(g *task.Graph, root *task.Node) map[task.ID]geometry.Point {
	if !g.Owns(root) {
		return nil
	}
	levels := v.assignLevels(g, root)
	return v.positionNodes(levels)
}

// ChildOffset spreads up to four new children in a row under the parent.
func (v *Vertical) ChildOffset(index int, scale float64) geometry.Point {
	return geometry.Pt((float64(index)-1.5)*v.SiblingSpacing*scale, v.LevelSpacing*scale)
}

// assignLevels determines which row each task belongs to by peeling the
// subtree in topological order.
func (v *Vertical) assignLevels(g *task.Graph, root *task.Node) [][]task.ID {
	sub := g.Subtree(root)
	inSub := make(map[task.ID]bool, len(sub))
	for _, n := range sub {
		inSub[n.ID()] = true
	}

	// Count in-degrees within the subtree only
	inDegree := make(map[task.ID]int, len(sub))
	for _, n := range sub {
		for _, pid := range n.ParentIDs() {
			if inSub[pid] {
				inDegree[n.ID()]++
			}
		}
	}

	var levels [][]task.ID
	assigned := make(map[task.ID]bool)
	queue := []task.ID{root.ID()}

	for len(queue) > 0 {
		current := slices.Clone(queue)
		levels = append(levels, current)
		for _, id := range current {
			assigned[id] = true
		}

		var next []task.ID
		for _, id := range current {
			n, _ := g.Lookup(id)
			for _, cid := range n.ChildIDs() {
				inDegree[cid]--
				if inDegree[cid] == 0 && !assigned[cid] {
					next = append(next, cid)
				}
			}
		}
		slices.Sort(next) // Deterministic ordering
		queue = next
	}

	// Tasks on a cycle never reach in-degree zero; give them a final row
	var remaining []task.ID
	for _, n := range sub {
		if !assigned[n.ID()] {
			remaining = append(remaining, n.ID())
		}
	}
	if len(remaining) > 0 {
		levels = append(levels, remaining)
	}
	return levels
}

// positionNodes centres each row on Origin.X.
func (v *Vertical) positionNodes(levels [][]task.ID) map[task.ID]geometry.Point {
	pos := make(map[task.ID]geometry.Point)
	y := v.Origin.Y
	for _, level := range levels {
		width := float64(len(level)-1) * v.SiblingSpacing
		x := v.Origin.X - width/2
		for _, id := range level {
			pos[id] = geometry.Pt(x, y)
			x += v.SiblingSpacing
		}
		y += v.LevelSpacing
	}
	return pos
}
