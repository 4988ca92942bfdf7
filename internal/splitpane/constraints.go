// Package splitpane computes panel sizes for a single resizable row or column
// of panels and tracks the hover/drag state of the dividers between them.
//
// The package does no rendering. A host feeds it pointer and container-extent
// events and reads back one size per panel plus one DividerState per divider.
// Nested layouts are built by composing independent Engine instances.
package splitpane

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Defaults used by NewConfig and by layout files that omit a field.
const (
	DefaultMinSize          = 10
	DefaultDividerThickness = 1
	DefaultHoverDelay       = 200 * time.Millisecond
)

// Axis selects the dimension sizes are computed along.
type Axis int

const (
	Row    Axis = iota // panels side by side, sizes are widths
	Column             // panels stacked, sizes are heights
)

// String returns the lowercase axis name used in layout files.
func (a Axis) String() string {
	switch a {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "unknown"
	}
}

// ParseAxis parses "row" or "column".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "row", "horizontal", "":
		return Row, nil
	case "column", "vertical":
		return Column, nil
	default:
		return Row, fmt.Errorf("unknown axis %q (expected row or column)", s)
	}
}

// Point is a pointer position in host coordinates.
type Point struct {
	X, Y float64
}

// Project returns the component of p along the axis.
func (a Axis) Project(p Point) float64 {
	if a == Column {
		return p.Y
	}
	return p.X
}

// PanelSpec holds the size constraints of one panel. Nil fields are unset.
//
// PreferredSize is dual-purpose: a value in (0, 1] is a fraction of the
// available extent at allocation time, anything else is an absolute size.
type PanelSpec struct {
	Name          string
	MinSize       *float64
	MaxSize       *float64
	PreferredSize *float64
}

// Px returns a pointer to v, for filling PanelSpec fields inline.
func Px(v float64) *float64 {
	return &v
}

// Config is the construction input of an Engine.
type Config struct {
	Panels           []PanelSpec
	Axis             Axis
	DividerThickness float64
	DefaultMinSize   float64
	HoverDelay       time.Duration
}

// NewConfig returns a row Config for panels with the package defaults filled
// in. Engine takes DividerThickness and DefaultMinSize literally, so a zero
// value there means zero.
func NewConfig(panels ...PanelSpec) Config {
	return Config{
		Panels:           panels,
		Axis:             Row,
		DividerThickness: DefaultDividerThickness,
		DefaultMinSize:   DefaultMinSize,
		HoverDelay:       DefaultHoverDelay,
	}
}

func (c Config) hoverDelay() time.Duration {
	if c.HoverDelay <= 0 {
		return DefaultHoverDelay
	}
	return c.HoverDelay
}

// Validate reports values that make the layout arithmetic meaningless.
// Infeasible constraints (minimums that do not fit) are not errors.
func (c Config) Validate() error {
	var errs []error

	if c.DividerThickness < 0 || math.IsNaN(c.DividerThickness) {
		errs = append(errs, fmt.Errorf("divider_thickness=%v must not be negative", c.DividerThickness))
	}
	if c.DefaultMinSize < 0 || math.IsNaN(c.DefaultMinSize) {
		errs = append(errs, fmt.Errorf("default_min_size=%v must not be negative", c.DefaultMinSize))
	}
	if c.HoverDelay < 0 {
		errs = append(errs, fmt.Errorf("hover_delay=%v must not be negative", c.HoverDelay))
	}
	for i, p := range c.Panels {
		errs = append(errs, validatePanel(i, p)...)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validatePanel(i int, p PanelSpec) []error {
	var errs []error
	check := func(field string, v *float64) {
		if v == nil {
			return
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			errs = append(errs, fmt.Errorf("panels[%d].%s=%v is not a finite number", i, field, *v))
		} else if *v < 0 {
			errs = append(errs, fmt.Errorf("panels[%d].%s=%v must not be negative", i, field, *v))
		}
	}
	check("min_size", p.MinSize)
	check("max_size", p.MaxSize)
	check("preferred_size", p.PreferredSize)
	return errs
}

// bounds is the resolved [min, max] of one panel. max is +Inf when unset.
type bounds struct {
	min, max float64
}

func (b bounds) clamp(v float64) float64 {
	return math.Min(math.Max(v, b.min), b.max)
}

// resolveBounds applies the default minimum and settles min > max by letting
// the minimum win.
func resolveBounds(panels []PanelSpec, defaultMin float64, logger *slog.Logger) []bounds {
	out := make([]bounds, len(panels))
	for i, p := range panels {
		b := bounds{min: defaultMin, max: math.Inf(1)}
		if p.MinSize != nil {
			b.min = *p.MinSize
		}
		if p.MaxSize != nil {
			b.max = *p.MaxSize
		}
		if b.max < b.min {
			if logger != nil {
				logger.Warn("splitpane: panel max_size below min_size, min wins",
					"panel", i, "name", p.Name, "min", b.min, "max", b.max)
			}
			b.max = b.min
		}
		out[i] = b
	}
	return out
}
