package editor

import (
	"fmt"
	"math"

	"taskgrapher/geometry"
	"taskgrapher/task"
)

// HitTest returns the node whose marker or label is among the nearest
// elements to p and whose centre lies within the scaled node radius.
// Lines never resolve to a node.
func (e *Editor) HitTest(p geometry.Point) (*task.Node, bool) {
	for _, h := range e.surface.Nearest(p, e.nearest) {
		id, ok := e.owners[h]
		if !ok {
			continue
		}
		if d, ok := e.Distance(p, id); ok && d <= e.Radius() {
			return e.nodes[id], true
		}
	}
	return nil, false
}

// Distance returns the distance from p to a drawn node's centre.
func (e *Editor) Distance(p geometry.Point, id task.ID) (float64, bool) {
	v, ok := e.visuals[id]
	if !ok {
		return 0, false
	}
	return geometry.Distance(p, v.Pos), true
}

// Pan translates every drawn node and edge by d.
func (e *Editor) Pan(d geometry.Point) {
	if d.IsZero() {
		return
	}
	for _, v := range e.visuals {
		v.Pos = v.Pos.Add(d)
		e.surface.Move(v.Marker, d)
		e.surface.Move(v.Label, d)
	}
	for h, seg := range e.edges {
		e.setEdge(h, seg.Translate(d))
	}
}

// Zoom multiplies the running scale by factor and re-projects every drawn
// node and edge about anchor. Markers are resized to the new scale.
func (e *Editor) Zoom(anchor geometry.Point, factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, factor)
	}
	e.scale *= factor
	r := e.Radius()
	for _, v := range e.visuals {
		v.Pos = geometry.ScaleAbout(v.Pos, anchor, factor)
		e.surface.SetCoords(v.Marker, geometry.Around(v.Pos, r).Coords()...)
		e.surface.SetCoords(v.Label, v.Pos.X, v.Pos.Y)
	}
	for h, seg := range e.edges {
		e.setEdge(h, seg.ScaleAbout(anchor, factor))
	}
	e.logger.Debug("zoomed", "factor", factor, "scale", e.scale)
	return nil
}
