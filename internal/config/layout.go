package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MikeBiancalana/splitpane/internal/splitpane"
	"gopkg.in/yaml.v3"
)

// Layout is the on-disk description of a split layout. A panel may carry a
// nested Layout, which the host runs as an independent engine.
type Layout struct {
	Axis             string        `yaml:"axis,omitempty"`
	DividerThickness *float64      `yaml:"divider_thickness,omitempty"`
	DefaultMinSize   *float64      `yaml:"default_min_size,omitempty"`
	HoverDelay       time.Duration `yaml:"hover_delay,omitempty"`
	Panels           []Panel       `yaml:"panels"`
}

// Panel is one entry of Layout.Panels.
type Panel struct {
	Name          string   `yaml:"name,omitempty"`
	MinSize       *float64 `yaml:"min_size,omitempty"`
	MaxSize       *float64 `yaml:"max_size,omitempty"`
	PreferredSize *float64 `yaml:"preferred_size,omitempty"`
	Split         *Layout  `yaml:"split,omitempty"`
}

// DefaultLayout is used when no layout file exists: a file list, an editor
// and a side column split into outline and terminal.
func DefaultLayout() Layout {
	return Layout{
		Axis: "row",
		Panels: []Panel{
			{Name: "files", MinSize: splitpane.Px(16), PreferredSize: splitpane.Px(0.25)},
			{Name: "editor", MinSize: splitpane.Px(20)},
			{
				Name:    "side",
				MaxSize: splitpane.Px(48),
				Split: &Layout{
					Axis: "column",
					Panels: []Panel{
						{Name: "outline", MinSize: splitpane.Px(3)},
						{Name: "terminal", MinSize: splitpane.Px(3), PreferredSize: splitpane.Px(8)},
					},
				},
			},
		},
	}
}

// LoadLayout reads, parses and validates a layout file. SPLITPANE_AXIS
// overrides the root axis. A missing file returns an error wrapping
// os.ErrNotExist.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return Layout{}, fmt.Errorf("layout path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout %s: %w", path, err)
	}

	l, err := ParseLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}

	applyEnvOverrides(&l)

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// ParseLayout decodes a YAML layout without validating it.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes l to path as YAML, creating the parent directory.
func WriteLayout(path string, l Layout) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

func applyEnvOverrides(l *Layout) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"SPLITPANE_AXIS", func(v string) {
			if v != "" {
				l.Axis = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// Validate returns an error describing every invalid field, nested splits
// included.
func (l Layout) Validate() error {
	return errors.Join(l.validate("")...)
}

func (l Layout) validate(prefix string) []error {
	var errs []error

	if _, err := splitpane.ParseAxis(l.Axis); err != nil {
		errs = append(errs, fmt.Errorf("%saxis: %w", prefix, err))
	}
	if len(l.Panels) == 0 {
		errs = append(errs, fmt.Errorf("%spanels: at least one panel is required", prefix))
	}

	if err := l.EngineConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%s%w", prefix, err))
	}

	for i, p := range l.Panels {
		if p.Split != nil {
			errs = append(errs, p.Split.validate(fmt.Sprintf("%spanels[%d].split.", prefix, i))...)
		}
	}
	return errs
}

// EngineConfig converts the top level of l into an engine configuration,
// filling package defaults for omitted fields. Nested splits are not
// included; see Panel.Split.
func (l Layout) EngineConfig() splitpane.Config {
	axis, _ := splitpane.ParseAxis(l.Axis)

	panels := make([]splitpane.PanelSpec, len(l.Panels))
	for i, p := range l.Panels {
		panels[i] = splitpane.PanelSpec{
			Name:          p.Name,
			MinSize:       p.MinSize,
			MaxSize:       p.MaxSize,
			PreferredSize: p.PreferredSize,
		}
	}

	cfg := splitpane.NewConfig(panels...)
	cfg.Axis = axis
	if l.DividerThickness != nil {
		cfg.DividerThickness = *l.DividerThickness
	}
	if l.DefaultMinSize != nil {
		cfg.DefaultMinSize = *l.DefaultMinSize
	}
	if l.HoverDelay != 0 {
		cfg.HoverDelay = l.HoverDelay
	}
	return cfg
}
