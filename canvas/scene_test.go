package canvas

import (
	"testing"

	"taskgrapher/diagram"
	"taskgrapher/geometry"
)

func TestScene_CreateAndItem(t *testing.T) {
	s := NewScene()
	m := s.CreateMarker(geometry.Around(geometry.Pt(100, 100), 30))
	l := s.CreateLabel(geometry.Pt(100, 100), "root")
	ln := s.CreateLine(geometry.Segment{From: geometry.Pt(0, 0), To: geometry.Pt(10, 0)})

	if m == diagram.None || l == m || ln == l {
		t.Fatalf("handles not distinct: %d %d %d", m, l, ln)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	el, ok := s.Item(l)
	if !ok || el.Kind != diagram.KindLabel || el.Text != "root" {
		t.Errorf("Item(label) = %+v, %v", el, ok)
	}
	el, _ = s.Item(m)
	if c := el.Center(); !c.ApproxEqual(geometry.Pt(100, 100)) {
		t.Errorf("marker centre = %v", c)
	}
}

func TestScene_MoveAndSetCoords(t *testing.T) {
	s := NewScene()
	m := s.CreateMarker(geometry.Around(geometry.Pt(0, 0), 10))
	s.Move(m, geometry.Pt(5, -5))

	el, _ := s.Item(m)
	want := []float64{-5, -15, 15, 5}
	for i := range want {
		if el.Coords[i] != want[i] {
			t.Fatalf("coords after Move = %v, want %v", el.Coords, want)
		}
	}

	s.SetCoords(m, 1, 2, 3, 4)
	el, _ = s.Item(m)
	if el.Coords[0] != 1 || el.Coords[3] != 4 {
		t.Errorf("coords after SetCoords = %v", el.Coords)
	}

	// wrong arity is ignored
	s.SetCoords(m, 9, 9)
	el, _ = s.Item(m)
	if el.Coords[0] != 1 {
		t.Errorf("SetCoords with wrong arity changed coords to %v", el.Coords)
	}
}

func TestScene_UnknownHandleIsNoop(t *testing.T) {
	s := NewScene()
	s.Move(42, geometry.Pt(1, 1))
	s.SetCoords(42, 1, 2)
	s.Delete(42)
	s.Lower(42)
	s.Highlight(42, true)
	s.Bind(42, func() {})
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestScene_DeleteAndLower(t *testing.T) {
	s := NewScene()
	a := s.CreateMarker(geometry.Around(geometry.Pt(0, 0), 1))
	b := s.CreateMarker(geometry.Around(geometry.Pt(0, 0), 1))
	c := s.CreateLine(geometry.Segment{})

	s.Lower(c)
	items := s.Items()
	if items[0].Handle != c || items[1].Handle != a || items[2].Handle != b {
		t.Errorf("paint order after Lower = %v %v %v", items[0].Handle, items[1].Handle, items[2].Handle)
	}

	s.Delete(a)
	if _, ok := s.Item(a); ok {
		t.Error("deleted item still present")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestScene_Nearest(t *testing.T) {
	s := NewScene()
	far := s.CreateMarker(geometry.Around(geometry.Pt(500, 500), 30))
	near := s.CreateMarker(geometry.Around(geometry.Pt(100, 100), 30))
	line := s.CreateLine(geometry.Segment{From: geometry.Pt(0, 200), To: geometry.Pt(400, 200)})

	got := s.Nearest(geometry.Pt(110, 100), 3)
	if len(got) != 3 || got[0] != near || got[1] != line || got[2] != far {
		t.Errorf("Nearest = %v, want [%d %d %d]", got, near, line, far)
	}

	if got := s.Nearest(geometry.Pt(0, 0), 1); len(got) != 1 {
		t.Errorf("Nearest n=1 returned %d handles", len(got))
	}
	if got := s.Nearest(geometry.Pt(0, 0), 0); got != nil {
		t.Errorf("Nearest n=0 = %v, want nil", got)
	}
}

func TestScene_NearestPrefersTopmostOnTie(t *testing.T) {
	s := NewScene()
	marker := s.CreateMarker(geometry.Around(geometry.Pt(0, 0), 30))
	label := s.CreateLabel(geometry.Pt(0, 0), "x")

	got := s.Nearest(geometry.Pt(0, 0), 2)
	if got[0] != label || got[1] != marker {
		t.Errorf("Nearest = %v, want label first", got)
	}
}

func TestScene_Fire(t *testing.T) {
	s := NewScene()
	m := s.CreateMarker(geometry.Around(geometry.Pt(50, 50), 10))
	fired := 0
	s.Bind(m, func() { fired++ })

	if !s.Fire(geometry.Pt(55, 50)) || fired != 1 {
		t.Errorf("Fire inside marker: fired=%d", fired)
	}
	if s.Fire(geometry.Pt(100, 100)) || fired != 1 {
		t.Errorf("Fire outside marker should not run, fired=%d", fired)
	}

	s.Delete(m)
	if s.Fire(geometry.Pt(50, 50)) {
		t.Error("Fire ran a binding of a deleted marker")
	}
}

func TestScene_Rasterize(t *testing.T) {
	s := NewScene()
	s.CreateLine(geometry.Segment{From: geometry.Pt(0, 20), To: geometry.Pt(100, 20)})
	m := s.CreateMarker(geometry.Around(geometry.Pt(50, 50), 20))
	s.Highlight(m, true)
	s.CreateLabel(geometry.Pt(50, 50), "ab")

	c, _ := NewMatrixCanvas(12, 6)
	s.Rasterize(c, 10, 10)

	if got := c.Get(3, 2); got.Kind != diagram.KindLine || got.Rune != '─' {
		t.Errorf("line cell = %+v", got)
	}
	if got := c.Get(5, 4); got.Kind != diagram.KindMarker || !got.Highlight {
		t.Errorf("marker cell = %+v", got)
	}
	if got := c.Get(4, 5); got.Kind != diagram.KindLabel || got.Rune != 'a' {
		t.Errorf("label cell = %+v", got)
	}
}
