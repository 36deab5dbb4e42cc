// Package task holds the task graph: labelled nodes with optional due
// metadata, linked into a DAG with bounded fan-out and fan-in.
//
// Nodes live in a Graph arena. Adjacency is stored as id sequences that are
// resolved through the arena, so a node shared by several parents is a
// single record rather than a web of mutual pointers.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ID identifies a node within its Graph. IDs are assigned in creation
// order and never reused.
type ID int64

// Default adjacency caps.
const (
	DefaultMaxChildren = 4
	DefaultMaxParents  = 4
)

// Validation errors returned by node constructors and mutators.
var (
	ErrEmptyValue  = errors.New("task value must be non-empty text")
	ErrInvalidDate = errors.New("invalid due date")
	ErrInvalidTime = errors.New("invalid due time")
	ErrInvalidCap  = errors.New("adjacency cap must be at least 1")
)

// Node is a single task.
type Node struct {
	id        ID
	value     string
	created   time.Time
	dueDate   *Date
	dueTime   *TimeOfDay
	completed bool

	children []ID
	parents  []ID

	maxChildren int
	maxParents  int
}

// NodeOption configures a node at construction.
type NodeOption func(*Node) error

// WithDueDate sets the node's due date.
func WithDueDate(d Date) NodeOption {
	return func(n *Node) error {
		_, err := n.SetDueDate(d)
		return err
	}
}

// WithDueTime sets the node's due time. A due date is not required.
func WithDueTime(t TimeOfDay) NodeOption {
	return func(n *Node) error {
		_, err := n.SetDueTime(t)
		return err
	}
}

// ID returns the node's identity.
func (n *Node) ID() ID { return n.id }

// Value returns the task label.
func (n *Node) Value() string { return n.value }

// SetValue replaces the task label. Blank labels are rejected.
func (n *Node) SetValue(v string) (string, error) {
	if strings.TrimSpace(v) == "" {
		return n.value, ErrEmptyValue
	}
	n.value = v
	return n.value, nil
}

// Created returns the creation timestamp.
func (n *Node) Created() time.Time { return n.created }

// DueDate returns the due date, if one is set.
func (n *Node) DueDate() (Date, bool) {
	if n.dueDate == nil {
		return Date{}, false
	}
	return *n.dueDate, true
}

// SetDueDate sets the due date and returns the stored value.
func (n *Node) SetDueDate(d Date) (Date, error) {
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	n.dueDate = &d
	return d, nil
}

// ClearDueDate removes the due date.
func (n *Node) ClearDueDate() { n.dueDate = nil }

// DueTime returns the due time, if one is set.
func (n *Node) DueTime() (TimeOfDay, bool) {
	if n.dueTime == nil {
		return TimeOfDay{}, false
	}
	return *n.dueTime, true
}

// SetDueTime sets the due time and returns the stored value.
func (n *Node) SetDueTime(t TimeOfDay) (TimeOfDay, error) {
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("%w: %s", ErrInvalidTime, t)
	}
	n.dueTime = &t
	return t, nil
}

// ClearDueTime removes the due time.
func (n *Node) ClearDueTime() { n.dueTime = nil }

// Completed reports whether the task is done.
func (n *Node) Completed() bool { return n.completed }

// SetCompleted marks the task done or not done.
func (n *Node) SetCompleted(done bool) { n.completed = done }

// MaxChildren returns the node's fan-out cap.
func (n *Node) MaxChildren() int { return n.maxChildren }

// SetMaxChildren changes the fan-out cap. Existing children are kept even
// when the new cap is lower; only future attaches are refused.
func (n *Node) SetMaxChildren(max int) error {
	if max < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCap, max)
	}
	n.maxChildren = max
	return nil
}

// MaxParents returns the node's fan-in cap.
func (n *Node) MaxParents() int { return n.maxParents }

// SetMaxParents changes the fan-in cap, with the same rules as SetMaxChildren.
func (n *Node) SetMaxParents(max int) error {
	if max < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidCap, max)
	}
	n.maxParents = max
	return nil
}

// ChildIDs returns the ids of the node's children in attach order.
func (n *Node) ChildIDs() []ID { return append([]ID(nil), n.children...) }

// ParentIDs returns the ids of the node's parents in attach order.
func (n *Node) ParentIDs() []ID { return append([]ID(nil), n.parents...) }

// HasChild reports whether id is a direct child.
func (n *Node) HasChild(id ID) bool { return indexOf(n.children, id) >= 0 }

// HasParent reports whether id is a direct parent.
func (n *Node) HasParent(id ID) bool { return indexOf(n.parents, id) >= 0 }

func (n *Node) String() string {
	return fmt.Sprintf("#%d %q", n.id, n.value)
}

func indexOf(ids []ID, id ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func without(ids []ID, id ID) []ID {
	if i := indexOf(ids, id); i >= 0 {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}
