package diagram

import "taskgrapher/geometry"

// Surface is a retained-mode drawing surface. Elements persist until
// deleted and are addressed by the Handle returned at creation.
//
// Operations on an unknown or deleted handle are no-ops.
type Surface interface {
	// CreateMarker adds a circular marker inscribed in box.
	CreateMarker(box geometry.Rect) Handle

	// CreateLabel adds a text label centred on at.
	CreateLabel(at geometry.Point, text string) Handle

	// CreateLine adds a straight line.
	CreateLine(seg geometry.Segment) Handle

	// Move translates an element by delta.
	Move(h Handle, delta geometry.Point)

	// SetCoords repositions an element using the same coordinate layout
	// as its constructor (see Element.Coords).
	SetCoords(h Handle, coords ...float64)

	// Delete removes an element and any binding attached to it.
	Delete(h Handle)

	// Nearest returns up to n handles ordered by distance from p, the
	// topmost element first on ties.
	Nearest(p geometry.Point, n int) []Handle

	// Lower moves an element to the bottom of the paint order.
	Lower(h Handle)

	// Highlight toggles the selected style of an element.
	Highlight(h Handle, on bool)

	// Bind attaches fn to an element. Fire invokes it.
	Bind(h Handle, fn func())

	// Fire invokes the binding of the topmost bound element whose shape
	// contains p. It reports whether a binding ran.
	Fire(p geometry.Point) bool
}
