package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"taskgrapher/canvas"
	"taskgrapher/config"
	"taskgrapher/diagram"
)

type styles struct {
	marker, selected, label, edge tcell.Style
	menu, status                  tcell.Style
}

func rgb(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func newStyles(p config.Palette) styles {
	base := tcell.StyleDefault
	return styles{
		marker:   base.Foreground(rgb(p.Marker)),
		selected: base.Foreground(rgb(p.Selected)),
		label:    base.Foreground(rgb(p.Label)).Background(rgb(p.Marker)).Bold(true),
		edge:     base.Foreground(rgb(p.Edge)),
		menu:     base.Foreground(rgb(p.Label)).Background(rgb(p.Edge)),
		status:   base.Reverse(true),
	}
}

// cell picks the style for one rasterized cell.
func (st styles) cell(c canvas.Cell) tcell.Style {
	switch c.Kind {
	case diagram.KindMarker:
		if c.Highlight {
			return st.selected
		}
		return st.marker
	case diagram.KindLabel:
		return st.label
	default:
		return st.edge
	}
}
