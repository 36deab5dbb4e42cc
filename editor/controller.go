package editor

import (
	"taskgrapher/geometry"
	"taskgrapher/task"
)

// DefaultZoomStep is the factor applied by one ZoomIn.
const DefaultZoomStep = 1.25

// Menu is an open context menu.
type Menu struct {
	Target *task.Node
	At     geometry.Point
	Items  []Action
}

// Controller turns pointer input, already converted to logical
// coordinates, into Editor calls. It tracks only which gesture is in
// progress; all view state lives in the Editor.
type Controller struct {
	editor   *Editor
	zoomStep float64
	gesture  Gesture
	pointer  geometry.Point
	menu     *Menu
}

// NewController creates a controller for e. A zoomStep of 1 or less falls
// back to DefaultZoomStep.
func NewController(e *Editor, zoomStep float64) *Controller {
	if zoomStep <= 1 {
		zoomStep = DefaultZoomStep
	}
	return &Controller{editor: e, zoomStep: zoomStep}
}

// Editor returns the controlled editor.
func (c *Controller) Editor() *Editor { return c.editor }

// Gesture returns the gesture in progress.
func (c *Controller) Gesture() Gesture { return c.gesture }

// Pointer returns the last pointer position seen.
func (c *Controller) Pointer() geometry.Point { return c.pointer }

// Menu returns the open context menu, or nil.
func (c *Controller) Menu() *Menu { return c.menu }

// CloseMenu dismisses the context menu.
func (c *Controller) CloseMenu() { c.menu = nil }

// PointerDown starts a drag, a pan or opens the context menu depending on
// btn. A press while another gesture is in progress is ignored.
func (c *Controller) PointerDown(btn Button, p geometry.Point) {
	c.pointer = p
	if c.gesture != GestureIdle {
		return
	}
	switch btn {
	case ButtonPrimary:
		c.menu = nil
		if c.editor.BeginDrag(p) {
			c.gesture = GestureDrag
		}
	case ButtonPan:
		c.menu = nil
		c.gesture = GesturePan
	case ButtonSecondary:
		c.OpenMenu(p)
	}
}

// PointerMove continues the current gesture.
func (c *Controller) PointerMove(p geometry.Point) {
	last := c.pointer
	c.pointer = p
	switch c.gesture {
	case GestureDrag:
		c.editor.ContinueDrag(p)
	case GesturePan:
		c.editor.Pan(p.Sub(last))
	}
}

// PointerUp ends the current gesture. A release with no movement since
// the press leaves everything where it was.
func (c *Controller) PointerUp(btn Button, p geometry.Point) {
	switch {
	case c.gesture == GestureDrag && btn == ButtonPrimary:
		c.editor.ContinueDrag(p)
		c.editor.EndDrag()
		c.gesture = GestureIdle
	case c.gesture == GesturePan && btn == ButtonPan:
		c.editor.Pan(p.Sub(c.pointer))
		c.gesture = GestureIdle
	}
	c.pointer = p
}

// ZoomIn zooms in one step about p.
func (c *Controller) ZoomIn(p geometry.Point) error {
	c.pointer = p
	return c.editor.Zoom(p, c.zoomStep)
}

// ZoomOut zooms out one step about p.
func (c *Controller) ZoomOut(p geometry.Point) error {
	c.pointer = p
	return c.editor.Zoom(p, 1/c.zoomStep)
}

// ContextTarget returns the node whose marker is under p.
func (c *Controller) ContextTarget(p geometry.Point) (*task.Node, bool) {
	return c.editor.OpenContext(p)
}

// OpenMenu opens the context menu for the node under p. It reports
// whether a menu opened. Nothing opens while a gesture is in progress.
func (c *Controller) OpenMenu(p geometry.Point) bool {
	if c.gesture != GestureIdle {
		return false
	}
	target, ok := c.ContextTarget(p)
	if !ok {
		c.menu = nil
		return false
	}
	c.menu = &Menu{Target: target, At: p, Items: []Action{ActionAddChild, ActionDeleteSubtree}}
	return true
}

// AddChild adds a child labelled label under target and closes the menu.
func (c *Controller) AddChild(target *task.Node, label string) (*task.Node, bool, error) {
	c.menu = nil
	if c.gesture == GestureDrag {
		c.gesture = GestureIdle
	}
	return c.editor.AddChild(target, label)
}

// DeleteSubtree deletes target and its descendants and closes the menu.
func (c *Controller) DeleteSubtree(target *task.Node) []task.ID {
	c.menu = nil
	if c.gesture == GestureDrag {
		c.gesture = GestureIdle
	}
	return c.editor.DeleteSubtree(target)
}
