package splitpane

import "math"

// Allocate computes initial sizes for panels laid out across extent.
//
// Panels with a PreferredSize are served first (fractions of the available
// extent are floored), the rest of the available extent is split evenly
// across flexible panels, and finally every size is clamped to its own
// [min, max]. Clamping is independent per panel: when constraints cannot all
// be met the sizes do not sum to the available extent.
func Allocate(panels []PanelSpec, extent, dividerThickness, defaultMin float64) []float64 {
	return allocate(panels, resolveBounds(panels, defaultMin, nil), extent, dividerThickness)
}

func allocate(panels []PanelSpec, bs []bounds, extent, dividerThickness float64) []float64 {
	sizes := make([]float64, len(panels))
	if len(panels) == 0 {
		return sizes
	}

	available := extent - dividerThickness*float64(len(panels)-1)
	remaining := available

	var flexible []int
	for i, p := range panels {
		if p.PreferredSize == nil {
			flexible = append(flexible, i)
			continue
		}
		pref := *p.PreferredSize
		if pref > 0 && pref <= 1 {
			sizes[i] = floorFraction(available, pref)
		} else {
			sizes[i] = pref
		}
		remaining -= sizes[i]
	}

	if n := len(flexible); n > 0 {
		share := math.Floor(remaining / float64(n))
		for _, i := range flexible {
			sizes[i] = share
		}
		// Floor-division leftover goes to the last flexible panel so an
		// unconstrained layout fills the available extent exactly.
		sizes[flexible[n-1]] += remaining - share*float64(n)
	}

	for i := range sizes {
		sizes[i] = bs[i].clamp(sizes[i])
	}
	return sizes
}

// floorFraction floors available*pref after rounding away binary noise, so
// 700*0.7 floors to 490 rather than 489.
func floorFraction(available, pref float64) float64 {
	return math.Floor(math.Round(available*pref*1e6) / 1e6)
}
