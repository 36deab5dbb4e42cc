package editor

// Button identifies a pointer button as the controller sees it.
type Button int

const (
	ButtonPrimary   Button = iota + 1 // Drags nodes
	ButtonSecondary                   // Opens the context menu
	ButtonPan                         // Pans the view
)

// String returns the button name
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonPan:
		return "pan"
	default:
		return "none"
	}
}

// Gesture is the pointer gesture in progress
type Gesture int

const (
	GestureIdle Gesture = iota // No button held
	GestureDrag                // Dragging a selection
	GesturePan                 // Panning the view
)

// String returns the gesture name for display
func (g Gesture) String() string {
	switch g {
	case GestureIdle:
		return "IDLE"
	case GestureDrag:
		return "DRAG"
	case GesturePan:
		return "PAN"
	default:
		return "UNKNOWN"
	}
}

// Action is an entry of the node context menu
type Action int

const (
	ActionAddChild      Action = iota // Prompt for a label and add a child
	ActionDeleteSubtree               // Delete the node and its descendants
)

// String returns the menu text
func (a Action) String() string {
	switch a {
	case ActionAddChild:
		return "Add child"
	case ActionDeleteSubtree:
		return "Delete subtree"
	default:
		return "?"
	}
}
