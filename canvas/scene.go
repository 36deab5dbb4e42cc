package canvas

import (
	"math"
	"sort"

	"taskgrapher/diagram"
	"taskgrapher/geometry"
)

type item struct {
	kind      diagram.Kind
	coords    []float64
	text      string
	highlight bool
	bound     func()
}

// Scene is an in-memory diagram.Surface. The zero value is not usable;
// call NewScene.
type Scene struct {
	items map[diagram.Handle]*item
	order []diagram.Handle // paint order, bottom first
	next  diagram.Handle
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{items: make(map[diagram.Handle]*item)}
}

func (s *Scene) add(it *item) diagram.Handle {
	s.next++
	h := s.next
	s.items[h] = it
	s.order = append(s.order, h)
	return h
}

// CreateMarker adds a circular marker inscribed in box.
func (s *Scene) CreateMarker(box geometry.Rect) diagram.Handle {
	return s.add(&item{kind: diagram.KindMarker, coords: box.Coords()})
}

// CreateLabel adds a text label centred on at.
func (s *Scene) CreateLabel(at geometry.Point, text string) diagram.Handle {
	return s.add(&item{kind: diagram.KindLabel, coords: []float64{at.X, at.Y}, text: text})
}

// CreateLine adds a straight line.
func (s *Scene) CreateLine(seg geometry.Segment) diagram.Handle {
	return s.add(&item{kind: diagram.KindLine, coords: seg.Coords()})
}

// Move translates an element by delta.
func (s *Scene) Move(h diagram.Handle, delta geometry.Point) {
	it, ok := s.items[h]
	if !ok {
		return
	}
	for i := 0; i+1 < len(it.coords); i += 2 {
		it.coords[i] += delta.X
		it.coords[i+1] += delta.Y
	}
}

// SetCoords replaces an element's coordinates. A call with the wrong
// number of values for the element kind is ignored.
func (s *Scene) SetCoords(h diagram.Handle, coords ...float64) {
	it, ok := s.items[h]
	if !ok || len(coords) != len(it.coords) {
		return
	}
	copy(it.coords, coords)
}

// Delete removes an element and its binding.
func (s *Scene) Delete(h diagram.Handle) {
	if _, ok := s.items[h]; !ok {
		return
	}
	delete(s.items, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Lower moves an element to the bottom of the paint order.
func (s *Scene) Lower(h diagram.Handle) {
	if _, ok := s.items[h]; !ok {
		return
	}
	for i, o := range s.order {
		if o == h {
			copy(s.order[1:i+1], s.order[:i])
			s.order[0] = h
			return
		}
	}
}

// Highlight toggles the selected style of an element.
func (s *Scene) Highlight(h diagram.Handle, on bool) {
	if it, ok := s.items[h]; ok {
		it.highlight = on
	}
}

// Bind attaches fn to an element, replacing any earlier binding.
func (s *Scene) Bind(h diagram.Handle, fn func()) {
	if it, ok := s.items[h]; ok {
		it.bound = fn
	}
}

// Fire runs the binding of the topmost bound element containing p.
func (s *Scene) Fire(p geometry.Point) bool {
	for i := len(s.order) - 1; i >= 0; i-- {
		it := s.items[s.order[i]]
		if it.bound == nil || !it.contains(p) {
			continue
		}
		it.bound()
		return true
	}
	return false
}

// Nearest returns up to n handles ordered by distance from p. Markers are
// measured to their rim (zero inside), labels to their anchor and lines to
// the closest point of the segment.
func (s *Scene) Nearest(p geometry.Point, n int) []diagram.Handle {
	if n <= 0 || len(s.order) == 0 {
		return nil
	}
	type candidate struct {
		h     diagram.Handle
		dist  float64
		depth int
	}
	cands := make([]candidate, 0, len(s.order))
	for depth, h := range s.order {
		cands = append(cands, candidate{h, s.items[h].distance(p), depth})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].depth > cands[j].depth
	})
	if n > len(cands) {
		n = len(cands)
	}
	out := make([]diagram.Handle, n)
	for i := range out {
		out[i] = cands[i].h
	}
	return out
}

// Item returns a snapshot of one element.
func (s *Scene) Item(h diagram.Handle) (diagram.Element, bool) {
	it, ok := s.items[h]
	if !ok {
		return diagram.Element{}, false
	}
	return it.element(h), true
}

// Items returns every element in paint order, bottom first.
func (s *Scene) Items() []diagram.Element {
	out := make([]diagram.Element, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.items[h].element(h))
	}
	return out
}

// Len returns the number of live elements.
func (s *Scene) Len() int { return len(s.items) }

// Rasterize paints the scene onto m in paint order. One cell covers
// cellW×cellH logical units and cell (0,0) covers the logical origin.
func (s *Scene) Rasterize(m *MatrixCanvas, cellW, cellH float64) {
	if cellW <= 0 || cellH <= 0 {
		return
	}
	cx := func(x float64) int { return int(math.Floor(x / cellW)) }
	cy := func(y float64) int { return int(math.Floor(y / cellH)) }

	for _, h := range s.order {
		it := s.items[h]
		style := Cell{Kind: it.kind, Highlight: it.highlight}
		switch it.kind {
		case diagram.KindLine:
			c := it.coords
			m.DrawLine(cx(c[0]), cy(c[1]), cx(c[2]), cy(c[3]), style)
		case diagram.KindMarker:
			box := it.box()
			ctr := box.Center()
			style.Rune = '●'
			m.FillEllipse(ctr.X/cellW, ctr.Y/cellH, box.Width()/2/cellW, box.Height()/2/cellH, style)
		case diagram.KindLabel:
			c := it.coords
			m.DrawTextCentered(cx(c[0]), cy(c[1]), it.text, 0, style)
		}
	}
}

func (it *item) box() geometry.Rect {
	c := it.coords
	return geometry.Rect{Min: geometry.Pt(c[0], c[1]), Max: geometry.Pt(c[2], c[3])}
}

func (it *item) distance(p geometry.Point) float64 {
	c := it.coords
	switch it.kind {
	case diagram.KindMarker:
		box := it.box()
		return math.Max(0, geometry.Distance(p, box.Center())-box.Width()/2)
	case diagram.KindLine:
		return geometry.Segment{From: geometry.Pt(c[0], c[1]), To: geometry.Pt(c[2], c[3])}.DistanceTo(p)
	default:
		return geometry.Distance(p, geometry.Pt(c[0], c[1]))
	}
}

func (it *item) contains(p geometry.Point) bool {
	switch it.kind {
	case diagram.KindMarker:
		return it.distance(p) == 0
	case diagram.KindLine:
		return it.distance(p) <= 1
	default:
		return it.distance(p) <= 1
	}
}

func (it *item) element(h diagram.Handle) diagram.Element {
	coords := make([]float64, len(it.coords))
	copy(coords, it.coords)
	return diagram.Element{Handle: h, Kind: it.kind, Coords: coords, Text: it.text, Highlight: it.highlight}
}
