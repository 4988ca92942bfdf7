package tui_test

import (
	"fmt"

	"github.com/MikeBiancalana/splitpane/internal/tui"
)

// ExampleCalculatePaneDimensions shows the content area left for the panes
func ExampleCalculatePaneDimensions() {
	dims := tui.CalculatePaneDimensions(120, 30, 0)

	fmt.Printf("Content: %dx%d\n", dims.ContentWidth, dims.ContentHeight)
	fmt.Printf("Status bar: height %d\n", dims.StatusHeight)

	// Output:
	// Content: 120x29
	// Status bar: height 1
}
