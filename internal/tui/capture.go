package tui

import "github.com/MikeBiancalana/splitpane/internal/splitpane"

// pointerRouter decides which engine sees a mouse event. While a drag holds
// the capture every motion and release goes to the capturing split, wherever
// the pointer is.
type pointerRouter struct {
	captured *splitNode
	hovered  dividerRef
}

func (r *pointerRouter) capturerFor(s *splitNode) splitpane.Capturer {
	return splitpane.CapturerFunc(func() func() {
		r.captured = s
		return func() {
			if r.captured == s {
				r.captured = nil
			}
		}
	})
}

// hover moves the hovered divider to ref, sending leave and enter to the
// engines involved. An invalid ref means the pointer is over no divider.
func (r *pointerRouter) hover(ref dividerRef) {
	if ref == r.hovered {
		return
	}
	if r.hovered.valid() {
		r.hovered.split.engine.DividerPointerLeave(r.hovered.index)
	}
	r.hovered = ref
	if ref.valid() {
		ref.split.engine.DividerPointerEnter(ref.index)
	}
}

// reset forgets the capture and hover target, for a rebuilt tree.
func (r *pointerRouter) reset() {
	r.captured = nil
	r.hovered = dividerRef{}
}
