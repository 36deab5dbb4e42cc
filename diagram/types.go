// Package diagram defines the contract between the view model and a
// rendering surface: opaque element handles and the primitives used to
// create, move, query and delete them.
package diagram

import "taskgrapher/geometry"

// Handle identifies one visual element on a surface. The zero Handle never
// names an element.
type Handle uint64

// None is the zero Handle.
const None Handle = 0

// Kind is the type of a visual element.
type Kind int

const (
	KindMarker Kind = iota // Circular node marker
	KindLabel              // Text label drawn over a marker
	KindLine               // Parent→child connector
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindLabel:
		return "label"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Element is a read-only view of one element on a surface.
type Element struct {
	Handle    Handle
	Kind      Kind
	Coords    []float64 // marker: x1,y1,x2,y2 box; label: x,y; line: x1,y1,x2,y2
	Text      string
	Highlight bool
}

// Center returns the element's reference point: the box centre for
// markers, the anchor for labels and the midpoint for lines.
func (e Element) Center() geometry.Point {
	switch {
	case len(e.Coords) >= 4:
		return geometry.Pt((e.Coords[0]+e.Coords[2])/2, (e.Coords[1]+e.Coords[3])/2)
	case len(e.Coords) >= 2:
		return geometry.Pt(e.Coords[0], e.Coords[1])
	default:
		return geometry.Point{}
	}
}
