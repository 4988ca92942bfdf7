package splitpane

import "github.com/rs/xid"

// DragSession is the state of one divider drag, from pointer-down to
// pointer-up.
type DragSession struct {
	ID              string
	DividerIndex    int
	StartPointerPos float64
	StartSizes      []float64
}

func newDragSession(divider int, pos float64, sizes []float64) *DragSession {
	return &DragSession{
		ID:              xid.New().String(),
		DividerIndex:    divider,
		StartPointerPos: pos,
		StartSizes:      append([]float64(nil), sizes...),
	}
}

// Redistribute moves divider i by delta starting from start and returns the
// new sizes. Only panels i and i+1 change and their combined size is kept,
// except when both panels' minimums cannot fit in it; then the right panel's
// minimum wins and the left one may end up below its own.
//
// start is not modified. An out-of-range divider returns a copy of start.
func Redistribute(start []float64, panels []PanelSpec, i int, delta, defaultMin float64) []float64 {
	return redistribute(start, resolveBounds(panels, defaultMin, nil), i, delta)
}

func redistribute(start []float64, bs []bounds, i int, delta float64) []float64 {
	sizes := append([]float64(nil), start...)
	if i < 0 || i+1 >= len(sizes) || i+1 >= len(bs) {
		return sizes
	}

	left, right := bs[i], bs[i+1]
	total := start[i] + start[i+1]
	newLeft := start[i] + delta

	// Left constraints first, then right, each recomputing the partner.
	if newLeft > left.max {
		newLeft = left.max
	}
	if newLeft < left.min {
		newLeft = left.min
	}
	newRight := total - newLeft

	if newRight > right.max {
		newRight = right.max
		newLeft = total - newRight
	}
	if newRight < right.min {
		newRight = right.min
		newLeft = total - newRight
	}

	sizes[i] = newLeft
	sizes[i+1] = newRight
	return sizes
}
