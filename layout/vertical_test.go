package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskgrapher/geometry"
	"taskgrapher/task"
)

func TestVertical_Diamond(t *testing.T) {
	g := task.NewGraph()
	a, _ := g.New("A")
	b, _ := g.New("B")
	c, _ := g.New("C")
	d, _ := g.New("D")
	require.True(t, g.Attach(a, b))
	require.True(t, g.Attach(a, c))
	require.True(t, g.Attach(b, d))
	require.True(t, g.Attach(c, d))

	v := NewVertical(800, 600)
	pos := v.Place(g, a)
	require.Len(t, pos, 4)

	assert.Equal(t, geometry.Pt(400, 120), pos[a.ID()])
	assert.Equal(t, geometry.Pt(350, 240), pos[b.ID()])
	assert.Equal(t, geometry.Pt(450, 240), pos[c.ID()])
	assert.Equal(t, geometry.Pt(400, 360), pos[d.ID()])
}

func TestVertical_SharedTaskBelowDeepestParent(t *testing.T) {
	g := task.NewGraph()
	root, _ := g.New("root")
	mid, _ := g.New("mid")
	leaf, _ := g.New("leaf")
	require.True(t, g.Attach(root, mid))
	require.True(t, g.Attach(mid, leaf))
	require.True(t, g.Attach(root, leaf))

	pos := NewVertical(800, 600).Place(g, root)
	assert.Greater(t, pos[leaf.ID()].Y, pos[mid.ID()].Y)
}

func TestVertical_IgnoresParentsOutsideSubtree(t *testing.T) {
	g := task.NewGraph()
	other, _ := g.New("other")
	root, _ := g.New("root")
	child, _ := g.New("child")
	require.True(t, g.Attach(other, child))
	require.True(t, g.Attach(root, child))

	pos := NewVertical(800, 600).Place(g, root)
	require.Len(t, pos, 2)
	assert.Equal(t, 240.0, pos[child.ID()].Y)
}

func TestVertical_Cycle(t *testing.T) {
	g := task.NewGraph()
	root, _ := g.New("root")
	x, _ := g.New("x")
	y, _ := g.New("y")
	require.True(t, g.Attach(root, x))
	require.True(t, g.Attach(x, y))
	require.True(t, g.Attach(y, x))

	pos := NewVertical(800, 600).Place(g, root)
	assert.Len(t, pos, 3)
}

func TestVertical_ChildOffset(t *testing.T) {
	v := NewVertical(800, 600)
	assert.Equal(t, geometry.Pt(-150, 120), v.ChildOffset(0, 1))
	assert.Equal(t, geometry.Pt(150, 240), v.ChildOffset(3, 2))
}

func TestVertical_NotOwned(t *testing.T) {
	stray, _ := task.NewGraph().New("stray")
	assert.Nil(t, NewVertical(800, 600).Place(task.NewGraph(), stray))
}
