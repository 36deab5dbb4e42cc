package editor

import (
	"errors"
	"fmt"
)

// DeletePolicy decides what DeleteSubtree does with descendants that are
// also reachable from outside the deleted subtree.
type DeletePolicy int

const (
	// PreserveShared keeps any descendant that still has a parent outside
	// the deleted set. Only its edges into the deleted set go away.
	PreserveShared DeletePolicy = iota
	// Cascade deletes every reachable descendant.
	Cascade
)

// ErrUnknownPolicy is returned by ParseDeletePolicy.
var ErrUnknownPolicy = errors.New("unknown delete policy")

// String returns the policy name as used in configuration.
func (p DeletePolicy) String() string {
	switch p {
	case PreserveShared:
		return "preserve-shared"
	case Cascade:
		return "cascade"
	default:
		return "unknown"
	}
}

// ParseDeletePolicy parses a policy name.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch s {
	case "preserve-shared", "":
		return PreserveShared, nil
	case "cascade":
		return Cascade, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
