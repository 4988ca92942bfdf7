package splitpane

// Rescale scales sizes proportionally so they fill newExtent, then clamps each
// panel to its own [min, max]. It reports false and returns sizes unchanged
// when the current sizes sum to zero, since there is no proportion to keep.
//
// As with Allocate there is no second pass after clamping.
func Rescale(sizes []float64, panels []PanelSpec, newExtent, dividerThickness, defaultMin float64) ([]float64, bool) {
	return rescale(sizes, resolveBounds(panels, defaultMin, nil), newExtent, dividerThickness)
}

func rescale(sizes []float64, bs []bounds, newExtent, dividerThickness float64) ([]float64, bool) {
	out := append([]float64(nil), sizes...)
	if len(sizes) == 0 {
		return out, false
	}

	var oldTotal float64
	for _, s := range sizes {
		oldTotal += s
	}
	if oldTotal == 0 {
		return out, false
	}

	newAvailable := newExtent - dividerThickness*float64(len(sizes)-1)
	ratio := newAvailable / oldTotal
	for k := range out {
		scaled := sizes[k] * ratio
		if k < len(bs) {
			scaled = bs[k].clamp(scaled)
		}
		out[k] = scaled
	}
	return out, true
}
