package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Point
		want float64
	}{
		{Pt(0, 0), Pt(3, 4), 5},
		{Pt(100, 150), Pt(120, 180), math.Sqrt(20*20 + 30*30)},
		{Pt(-1, -1), Pt(-1, -1), 0},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > Epsilon {
			t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestScaleAboutInvertible(t *testing.T) {
	anchor := Pt(37.5, -12)
	points := []Point{Pt(0, 0), Pt(200, 200), Pt(-1e3, 4.25), anchor}
	for _, f := range []float64{1.25, 0.8, 3, 0.01} {
		for _, p := range points {
			back := ScaleAbout(ScaleAbout(p, anchor, f), anchor, 1/f)
			if !back.ApproxEqual(p) {
				t.Errorf("factor %v: %v round-tripped to %v", f, p, back)
			}
		}
	}
}

func TestScaleAboutFixesAnchor(t *testing.T) {
	anchor := Pt(10, 10)
	if got := ScaleAbout(anchor, anchor, 7); got != anchor {
		t.Errorf("anchor moved to %v", got)
	}
	if got := ScaleAbout(Pt(20, 10), anchor, 2); !got.ApproxEqual(Pt(30, 10)) {
		t.Errorf("got %v, want (30,10)", got)
	}
}

func TestSegmentDistanceTo(t *testing.T) {
	s := Segment{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		p    Point
		want float64
	}{
		{Pt(5, 3), 3},
		{Pt(-4, 3), 5},
		{Pt(13, 4), 5},
		{Pt(7, 0), 0},
	}
	for _, tt := range tests {
		if got := s.DistanceTo(tt.p); math.Abs(got-tt.want) > Epsilon {
			t.Errorf("DistanceTo(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	degenerate := Segment{Pt(1, 1), Pt(1, 1)}
	if got := degenerate.DistanceTo(Pt(4, 5)); math.Abs(got-5) > Epsilon {
		t.Errorf("degenerate DistanceTo = %v, want 5", got)
	}
}

func TestSegmentTranslateComposes(t *testing.T) {
	s := Segment{Pt(1, 2), Pt(3, 4)}
	twice := s.Translate(Pt(5, -1)).Translate(Pt(-2, 7))
	once := s.Translate(Pt(3, 6))
	if !twice.ApproxEqual(once) {
		t.Errorf("two translates %v != one summed translate %v", twice, once)
	}
}

func TestPolar(t *testing.T) {
	if got := Polar(0, 10); !got.ApproxEqual(Pt(10, 0)) {
		t.Errorf("Polar(0,10) = %v", got)
	}
	if got := Polar(Radians(90), 10); !got.ApproxEqual(Pt(0, 10)) {
		t.Errorf("Polar(90deg,10) = %v", got)
	}
}

func TestRect(t *testing.T) {
	r := Around(Pt(100, 150), 30)
	if r.Min != Pt(70, 120) || r.Max != Pt(130, 180) {
		t.Errorf("Around = %+v", r)
	}
	if r.Center() != Pt(100, 150) {
		t.Errorf("Center = %v", r.Center())
	}
	if r.Width() != 60 || r.Height() != 60 {
		t.Errorf("size = %vx%v", r.Width(), r.Height())
	}
	if !r.Contains(Pt(70, 180)) || r.Contains(Pt(69, 150)) {
		t.Error("Contains boundary check failed")
	}
}
