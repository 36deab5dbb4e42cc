// Package validation checks the structural invariants that tie a task
// graph to the view state drawn for it.
package validation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"taskgrapher/diagram"
	"taskgrapher/geometry"
	"taskgrapher/task"
)

// ErrInvariant is wrapped by every Violation.
var ErrInvariant = errors.New("invariant violated")

// Edge names the two ends of a drawn edge.
type Edge struct {
	Parent, Child task.ID
}

// Snapshot is a copy of a view model's bookkeeping.
type Snapshot struct {
	Registered    map[task.ID]*task.Node
	Positions     map[task.ID]geometry.Point
	EdgeCoords    map[diagram.Handle]geometry.Segment
	EdgeEndpoints map[diagram.Handle]Edge
	ChildEdges    map[task.ID][]diagram.Handle
	ParentEdges   map[task.ID][]diagram.Handle
}

// Violation describes one broken invariant.
type Violation struct {
	Rule    string
	Subject string
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s: %s", v.Rule, v.Subject, v.Message)
}

func (v Violation) Unwrap() error { return ErrInvariant }

// StateValidator checks a Snapshot against the graph it was taken from.
type StateValidator struct {
	violations []Violation
	tolerance  float64 // relative tolerance for cached coordinates
}

// NewStateValidator creates a validator with default settings.
func NewStateValidator() *StateValidator {
	return &StateValidator{tolerance: 1e-6}
}

// SetTolerance sets the relative tolerance used when comparing cached edge
// coordinates with node positions.
func (v *StateValidator) SetTolerance(tol float64) {
	if tol > 0 {
		v.tolerance = tol
	}
}

// Validate returns every violation found in s and g, sorted by rule and
// subject.
func (v *StateValidator) Validate(s Snapshot, g *task.Graph) []Violation {
	v.violations = nil
	v.checkGraph(g)
	v.checkNodes(s, g)
	v.checkEdges(s, g)
	v.checkAdjacency(s)

	sort.Slice(v.violations, func(i, j int) bool {
		a, b := v.violations[i], v.violations[j]
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Subject < b.Subject
	})
	return v.violations
}

// Check validates s against g with default settings and joins the
// violations into one error.
func Check(s Snapshot, g *task.Graph) error {
	return join(NewStateValidator().Validate(s, g))
}

// CheckGraph validates only the graph's adjacency invariants.
func CheckGraph(g *task.Graph) error {
	v := NewStateValidator()
	v.checkGraph(g)
	return join(v.violations)
}

func join(vs []Violation) error {
	if len(vs) == 0 {
		return nil
	}
	errs := make([]error, len(vs))
	for i, vi := range vs {
		errs[i] = vi
	}
	return errors.Join(errs...)
}

// checkGraph verifies that children and parents mirror each other, hold
// no duplicates, respect the caps and point at live nodes.
func (v *StateValidator) checkGraph(g *task.Graph) {
	for _, n := range g.Nodes() {
		children, parents := n.ChildIDs(), n.ParentIDs()
		if dup, ok := firstDuplicate(children); ok {
			v.add("graph-duplicate", n, "child %d listed twice", dup)
		}
		if dup, ok := firstDuplicate(parents); ok {
			v.add("graph-duplicate", n, "parent %d listed twice", dup)
		}
		if len(children) > n.MaxChildren() {
			v.add("graph-cap", n, "%d children exceeds cap %d", len(children), n.MaxChildren())
		}
		if len(parents) > n.MaxParents() {
			v.add("graph-cap", n, "%d parents exceeds cap %d", len(parents), n.MaxParents())
		}
		for _, cid := range children {
			c, ok := g.Lookup(cid)
			if !ok {
				v.add("graph-dangling", n, "child %d is not live", cid)
				continue
			}
			if !c.HasParent(n.ID()) {
				v.add("graph-symmetry", n, "child %d has no back-reference", cid)
			}
		}
		for _, pid := range parents {
			p, ok := g.Lookup(pid)
			if !ok {
				v.add("graph-dangling", n, "parent %d is not live", pid)
				continue
			}
			if !p.HasChild(n.ID()) {
				v.add("graph-symmetry", n, "parent %d does not list it as a child", pid)
			}
		}
	}
}

func (v *StateValidator) checkNodes(s Snapshot, g *task.Graph) {
	for id, n := range s.Registered {
		live, ok := g.Lookup(id)
		switch {
		case n == nil || n.ID() != id:
			v.add("registered-id", id, "registered under the wrong id")
		case !ok:
			v.add("registered-live", id, "registered node is not in the graph")
		case live != n:
			v.add("registered-live", id, "registered instance differs from the graph's")
		}
	}
	for id := range s.Positions {
		if _, ok := s.Registered[id]; !ok {
			v.add("position-registered", id, "drawn node is not registered")
		}
	}
}

func (v *StateValidator) checkEdges(s Snapshot, g *task.Graph) {
	for h := range s.EdgeEndpoints {
		if _, ok := s.EdgeCoords[h]; !ok {
			v.add("edge-endpoints", h, "endpoints recorded without coordinates")
		}
	}
	for h, seg := range s.EdgeCoords {
		ep, ok := s.EdgeEndpoints[h]
		if !ok {
			v.add("edge-endpoints", h, "coordinates recorded without endpoints")
			continue
		}
		pp, pok := s.Positions[ep.Parent]
		cp, cok := s.Positions[ep.Child]
		if !pok || !cok {
			v.add("edge-drawn", h, "endpoint %d→%d is not drawn", ep.Parent, ep.Child)
			continue
		}
		if !v.near(seg.From, pp) {
			v.add("edge-coords", h, "parent end %v does not match node %d at %v", seg.From, ep.Parent, pp)
		}
		if !v.near(seg.To, cp) {
			v.add("edge-coords", h, "child end %v does not match node %d at %v", seg.To, ep.Child, cp)
		}
		if p, ok := g.Lookup(ep.Parent); !ok || !p.HasChild(ep.Child) {
			v.add("edge-graph", h, "no graph edge %d→%d", ep.Parent, ep.Child)
		}
	}
}

// checkAdjacency verifies every edge appears in exactly one child set and
// one parent set, keyed by the right endpoint.
func (v *StateValidator) checkAdjacency(s Snapshot) {
	inChild := make(map[diagram.Handle]int)
	inParent := make(map[diagram.Handle]int)
	for id, hs := range s.ChildEdges {
		for _, h := range hs {
			inChild[h]++
			ep, ok := s.EdgeEndpoints[h]
			switch {
			case !ok:
				v.add("adjacency-freed", h, "child set of node %d holds a freed edge", id)
			case ep.Parent != id:
				v.add("adjacency-endpoint", h, "in child set of %d but parent is %d", id, ep.Parent)
			}
		}
	}
	for id, hs := range s.ParentEdges {
		for _, h := range hs {
			inParent[h]++
			ep, ok := s.EdgeEndpoints[h]
			switch {
			case !ok:
				v.add("adjacency-freed", h, "parent set of node %d holds a freed edge", id)
			case ep.Child != id:
				v.add("adjacency-endpoint", h, "in parent set of %d but child is %d", id, ep.Child)
			}
		}
	}
	for h := range s.EdgeEndpoints {
		if inChild[h] != 1 {
			v.add("adjacency-count", h, "in %d child sets, want 1", inChild[h])
		}
		if inParent[h] != 1 {
			v.add("adjacency-count", h, "in %d parent sets, want 1", inParent[h])
		}
	}
}

func (v *StateValidator) near(a, b geometry.Point) bool {
	scale := 1 + math.Max(math.Abs(b.X), math.Abs(b.Y))
	return math.Abs(a.X-b.X) <= v.tolerance*scale && math.Abs(a.Y-b.Y) <= v.tolerance*scale
}

func (v *StateValidator) add(rule string, subject any, format string, args ...any) {
	var subj string
	switch s := subject.(type) {
	case *task.Node:
		subj = fmt.Sprintf("node %d", s.ID())
	case task.ID:
		subj = fmt.Sprintf("node %d", s)
	case diagram.Handle:
		subj = fmt.Sprintf("edge %d", s)
	default:
		subj = fmt.Sprint(s)
	}
	v.violations = append(v.violations, Violation{
		Rule:    rule,
		Subject: subj,
		Message: fmt.Sprintf(format, args...),
	})
}

func firstDuplicate(ids []task.ID) (task.ID, bool) {
	seen := make(map[task.ID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return 0, false
}
