package editor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskgrapher/geometry"
	"taskgrapher/task"
)

// treeFixture builds root→a→{a1,a2}, root→b and draws it.
func treeFixture(t *testing.T, opts ...Option) (e *Editor, root, a, b, a1, a2 *task.Node) {
	t.Helper()
	g := task.NewGraph()
	root = mustNode(t, g, "root")
	a = mustNode(t, g, "a")
	b = mustNode(t, g, "b")
	a1 = mustNode(t, g, "a1")
	a2 = mustNode(t, g, "a2")
	link(t, g, root, a)
	link(t, g, root, b)
	link(t, g, a, a1)
	link(t, g, a, a2)
	_, e = newEditor(t, g, opts...)
	e.DrawTree(root)
	return
}

type coords struct {
	nodes map[task.ID]geometry.Point
	edges map[task.ID]map[task.ID]geometry.Segment
}

func capture(e *Editor) coords {
	s := e.Snapshot()
	c := coords{nodes: s.Positions, edges: make(map[task.ID]map[task.ID]geometry.Segment)}
	for h, ep := range s.EdgeEndpoints {
		if c.edges[ep.Parent] == nil {
			c.edges[ep.Parent] = make(map[task.ID]geometry.Segment)
		}
		c.edges[ep.Parent][ep.Child] = s.EdgeCoords[h]
	}
	return c
}

func assertCoordsNear(t *testing.T, want, got coords, tol float64) {
	t.Helper()
	require.Len(t, got.nodes, len(want.nodes))
	for id, p := range want.nodes {
		q := got.nodes[id]
		assert.InDelta(t, p.X, q.X, tol, "node %d x", id)
		assert.InDelta(t, p.Y, q.Y, tol, "node %d y", id)
	}
	for pid, m := range want.edges {
		for cid, seg := range m {
			g := got.edges[pid][cid]
			assert.InDeltaSlice(t, seg.Coords(), g.Coords(), tol, "edge %d→%d", pid, cid)
		}
	}
}

func TestZoom_Invertible(t *testing.T) {
	factors := []float64{1.25, 2, 0.3, 7.77}
	anchors := []geometry.Point{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: -123.4, Y: 987.6}}

	for _, f := range factors {
		for _, p := range anchors {
			e, _, _, _, _, _ := treeFixture(t)
			before := capture(e)

			require.NoError(t, e.Zoom(p, f))
			require.NoError(t, e.Zoom(p, 1/f))

			assertCoordsNear(t, before, capture(e), 1e-6)
			assert.InDelta(t, 1, e.Scale(), 1e-9)
			assert.NoError(t, e.Check())
		}
	}
}

func TestZoom_ScalesAboutAnchor(t *testing.T) {
	e, root, a, _, _, _ := treeFixture(t)
	rp, ap := pos(t, e, root), pos(t, e, a)

	require.NoError(t, e.Zoom(rp, 2))
	assert.Equal(t, rp, pos(t, e, root))
	assert.True(t, pos(t, e, a).ApproxEqual(geometry.ScaleAbout(ap, rp, 2)))
	assert.Equal(t, 2.0, e.Scale())
	assert.Equal(t, 2*DefaultNodeRadius, e.Radius())

	v, _ := e.Visual(root.ID())
	assert.NotZero(t, v.Marker)
}

func TestZoom_InvalidFactor(t *testing.T) {
	e, _, _, _, _, _ := treeFixture(t)
	before := capture(e)
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, e.Zoom(geometry.Pt(0, 0), f), ErrInvalidZoom, "factor %v", f)
	}
	assertCoordsNear(t, before, capture(e), 0)
	assert.Equal(t, 1.0, e.Scale())
}

func TestPan_Composition(t *testing.T) {
	steps := []struct{ d1, d2 geometry.Point }{
		{geometry.Pt(10, 20), geometry.Pt(-3, 7)},
		{geometry.Pt(0.1, 0.2), geometry.Pt(0.3, -0.4)},
		{geometry.Pt(-500, 0), geometry.Pt(0, 500)},
	}
	for _, st := range steps {
		twice, _, _, _, _, _ := treeFixture(t)
		once, _, _, _, _, _ := treeFixture(t)

		twice.Pan(st.d1)
		twice.Pan(st.d2)
		once.Pan(st.d1.Add(st.d2))

		assertCoordsNear(t, capture(once), capture(twice), 1e-9)
		assert.NoError(t, twice.Check())
	}
}

func TestPan_MovesEverything(t *testing.T) {
	e, root, a, _, _, _ := treeFixture(t)
	rp, ap := pos(t, e, root), pos(t, e, a)
	e.Pan(geometry.Pt(5, -5))
	assert.Equal(t, rp.Add(geometry.Pt(5, -5)), pos(t, e, root))
	assert.Equal(t, ap.Add(geometry.Pt(5, -5)), pos(t, e, a))
	assert.NoError(t, e.Check())
}

func TestDrag_MovesSubtreeAndChildEndOfParentEdge(t *testing.T) {
	e, root, a, b, a1, a2 := treeFixture(t)
	before := capture(e)
	start := pos(t, e, a)
	delta := geometry.Pt(30, -12)

	require.True(t, e.BeginDrag(start))
	assert.Equal(t, []task.ID{a.ID(), a1.ID(), a2.ID()}, e.Selection())
	rigid, childEnd := e.SelectedEdges()
	assert.Len(t, rigid, 2)
	assert.Len(t, childEnd, 1)

	e.ContinueDrag(start.Add(geometry.Pt(10, -2)))
	e.ContinueDrag(start.Add(delta))
	e.EndDrag()

	for _, n := range []*task.Node{a, a1, a2} {
		assert.True(t, pos(t, e, n).ApproxEqual(before.nodes[n.ID()].Add(delta)), "node %s", n.Value())
	}
	for _, n := range []*task.Node{root, b} {
		assert.Equal(t, before.nodes[n.ID()], pos(t, e, n), "node %s moved", n.Value())
	}

	up := edge(t, e, root, a)
	assert.Equal(t, before.edges[root.ID()][a.ID()].From, up.From, "parent end must stay fixed")
	assert.True(t, up.To.ApproxEqual(before.edges[root.ID()][a.ID()].To.Add(delta)))

	down := edge(t, e, a, a1)
	assert.True(t, down.ApproxEqual(before.edges[a.ID()][a1.ID()].Translate(delta)))

	assert.Equal(t, before.edges[root.ID()][b.ID()], edge(t, e, root, b))
	assert.NoError(t, e.Check())
}

func TestDrag_SharedDescendant(t *testing.T) {
	g, root, a, b, d, leaf := sharedFixture(t)
	_, e := newEditor(t, g)
	e.DrawTree(root)
	delta := geometry.Pt(-20, 15)

	require.True(t, e.BeginDrag(pos(t, e, a)))
	assert.Equal(t, []task.ID{a.ID(), d.ID(), leaf.ID()}, e.Selection())
	_, childEnd := e.SelectedEdges()
	// root→A and B→D keep their parent end
	assert.Len(t, childEnd, 2)

	bd := edge(t, e, b, d)
	e.ContinueDrag(pos(t, e, a).Add(delta))
	e.EndDrag()

	moved := edge(t, e, b, d)
	assert.Equal(t, bd.From, moved.From)
	assert.True(t, moved.To.ApproxEqual(bd.To.Add(delta)))
	assert.NoError(t, e.Check())
}

func TestDrag_Lifecycle(t *testing.T) {
	e, root, _, _, _, _ := treeFixture(t)

	assert.False(t, e.BeginDrag(geometry.Pt(-1000, -1000)))
	assert.False(t, e.Dragging())

	// no-op without a selection
	before := capture(e)
	e.ContinueDrag(geometry.Pt(1, 1))
	e.EndDrag()
	assertCoordsNear(t, before, capture(e), 0)

	require.True(t, e.BeginDrag(pos(t, e, root)))
	requireInconsistent(t, func() { e.BeginDrag(pos(t, e, root)) })

	e.EndDrag()
	e.EndDrag()
	assert.False(t, e.Dragging())
	assert.Nil(t, e.Selection())
}

func TestDrag_ZeroMovement(t *testing.T) {
	e, root, _, _, _, _ := treeFixture(t)
	before := capture(e)
	p := pos(t, e, root)

	require.True(t, e.BeginDrag(p))
	e.ContinueDrag(p)
	e.EndDrag()
	assertCoordsNear(t, before, capture(e), 0)
}
