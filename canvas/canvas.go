// Package canvas provides an in-memory drawing surface for the task view
// and a character grid it can be rasterized onto.
//
// Scene implements diagram.Surface as a retained scene graph: elements keep
// float coordinates in the logical plane and are only turned into terminal
// cells when Rasterize paints them onto a MatrixCanvas.
package canvas

import "taskgrapher/diagram"

var _ diagram.Surface = (*Scene)(nil)
