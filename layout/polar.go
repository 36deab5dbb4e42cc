package layout

import (
	"math"

	"taskgrapher/geometry"
	"taskgrapher/task"
)

// Defaults for the polar layout.
const (
	DefaultBaseDistance   = 160.0
	DefaultLevelFactor    = 0.6
	DefaultAngleIncrement = math.Pi / 2
	DefaultSpiralStep     = math.Pi / 6
)

// Polar places the root at the viewport centre and each child i of a node
// at level L at angle i*AngleIncrement + offset and distance
// BaseDistance * LevelFactor^L from its parent.
//
// For the root the offset is zero. Below the root the offset centres the
// sibling fan on the direction the parent was placed in and adds
// L*SpiralStep, so sibling subtrees rotate away from each other instead of
// stacking.
type Polar struct {
	Center         geometry.Point
	BaseDistance   float64
	LevelFactor    float64
	AngleIncrement float64
	SpiralStep     float64
}

// NewPolar returns a polar layout centred in a width x height viewport.
func NewPolar(width, height float64) *Polar {
	return &Polar{
		Center:         geometry.Pt(width/2, height/2),
		BaseDistance:   DefaultBaseDistance,
		LevelFactor:    DefaultLevelFactor,
		AngleIncrement: DefaultAngleIncrement,
		SpiralStep:     DefaultSpiralStep,
	}
}

type placement struct {
	node  *task.Node
	level int
	angle float64 // direction this node was placed in from its parent
}

// Place returns a position for root and every descendant. A node reachable
// along several paths keeps the position from the first, breadth-first,
// discovery.
func (p *Polar) Place(g *task.Graph, root *task.Node) map[task.ID]geometry.Point {
	if !g.Owns(root) {
		return nil
	}
	pos := map[task.ID]geometry.Point{root.ID(): p.Center}
	queue := []placement{{node: root}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		children := g.Children(curr.node)
		offset := p.offset(curr, len(children))
		dist := p.BaseDistance * math.Pow(p.LevelFactor, float64(curr.level))

		for i, child := range children {
			if _, seen := pos[child.ID()]; seen {
				continue
			}
			angle := float64(i)*p.AngleIncrement + offset
			pos[child.ID()] = pos[curr.node.ID()].Add(geometry.Polar(angle, dist))
			queue = append(queue, placement{node: child, level: curr.level + 1, angle: angle})
		}
	}
	return pos
}

func (p *Polar) offset(parent placement, siblings int) float64 {
	if parent.level == 0 {
		return 0
	}
	fan := float64(siblings-1) * p.AngleIncrement / 2
	return parent.angle - fan + float64(parent.level)*p.SpiralStep
}

// ChildOffset places the index'th child one level out from its parent,
// scaled to the current zoom.
func (p *Polar) ChildOffset(index int, scale float64) geometry.Point {
	angle := float64(index)*p.AngleIncrement + p.SpiralStep
	return geometry.Polar(angle, p.BaseDistance*p.LevelFactor*scale)
}
