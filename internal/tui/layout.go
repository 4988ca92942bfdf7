package tui

import "math"

// PaneDimensions holds the terminal area split between the panes and the
// bottom bars.
type PaneDimensions struct {
	ContentWidth  int
	ContentHeight int

	// Bottom bars
	HelpHeight   int // 0 unless the full help is shown
	StatusHeight int // Fixed: 1 line
}

// CalculatePaneDimensions computes the content area left for the pane tree
// once the status bar and help lines are taken off the bottom.
func CalculatePaneDimensions(termWidth, termHeight, helpHeight int) PaneDimensions {
	dims := PaneDimensions{
		HelpHeight:   max(helpHeight, 0),
		StatusHeight: 1,
	}

	dims.ContentWidth = max(termWidth, 0)
	dims.ContentHeight = max(termHeight-dims.StatusHeight-dims.HelpHeight, 0)

	return dims
}

// rect is a cell rectangle in terminal coordinates.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// span is a run of cells along one axis, relative to the container start.
type span struct {
	Start, Len int
}

// cellSpans converts float sizes into integer panel and divider spans. Each
// boundary is the rounded cumulative offset, so neighbouring spans share
// edges and the cells tile the container without gaps. Spans are clipped to
// extent; an infeasible layout loses its tail panels instead of overflowing.
func cellSpans(sizes []float64, thickness float64, extent int) (panels, dividers []span) {
	panels = make([]span, len(sizes))
	if len(sizes) > 1 {
		dividers = make([]span, len(sizes)-1)
	}

	clip := func(from, to int) span {
		from = min(max(from, 0), extent)
		to = min(max(to, from), extent)
		return span{Start: from, Len: to - from}
	}

	pos := 0.0
	for i, size := range sizes {
		start := int(math.Round(pos))
		end := int(math.Round(pos + size))
		panels[i] = clip(start, end)
		pos += size

		if i < len(dividers) {
			dEnd := int(math.Round(pos + thickness))
			dividers[i] = clip(end, dEnd)
			pos += thickness
		}
	}
	return panels, dividers
}

// cellThickness rounds a divider thickness to whole cells.
func cellThickness(thickness float64) float64 {
	return math.Round(max(thickness, 0))
}
