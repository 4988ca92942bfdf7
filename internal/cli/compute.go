package cli

import (
	"fmt"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/MikeBiancalana/splitpane/internal/logger"
	"github.com/MikeBiancalana/splitpane/internal/splitpane"
	"github.com/spf13/cobra"
)

// computeFlags are shared by allocate, drag and rescale.
type computeFlags struct {
	extent float64
	split  string
	format string
}

func (c *computeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&c.extent, "extent", 0, "container extent along the layout axis (required)")
	cmd.Flags().StringVar(&c.split, "split", "", "name of the panel whose nested split to use (default: top level)")
	cmd.Flags().StringVarP(&c.format, "format", "f", "tsv", "output format: json, tsv, csv")
	_ = cmd.MarkFlagRequired("extent")
}

// engineFor loads the layout and builds an engine for the selected split at
// the requested extent.
func (c *computeFlags) engineFor(flags *globalFlags) (*splitpane.Engine, []string, OutputFormat, error) {
	format, err := parseFormat(c.format)
	if err != nil {
		return nil, nil, "", err
	}
	if err := applyLogFlags(flags); err != nil {
		return nil, nil, "", err
	}

	layout, _, err := loadLayout(flags.configPath)
	if err != nil {
		return nil, nil, "", err
	}
	if c.split != "" {
		nested, ok := findSplit(layout, c.split)
		if !ok {
			return nil, nil, "", fmt.Errorf("no panel named %q with a nested split", c.split)
		}
		layout = nested
	}

	cfg := layout.EngineConfig()
	engine, err := splitpane.New(cfg, c.extent, splitpane.WithLogger(logger.GetLogger()))
	if err != nil {
		return nil, nil, "", err
	}

	names := make([]string, len(cfg.Panels))
	for i, p := range cfg.Panels {
		names[i] = p.Name
	}
	return engine, names, format, nil
}

// findSplit returns the nested layout of the first panel called name,
// searching depth first.
func findSplit(l config.Layout, name string) (config.Layout, bool) {
	for _, p := range l.Panels {
		if p.Split == nil {
			continue
		}
		if p.Name == name {
			return *p.Split, true
		}
		if nested, ok := findSplit(*p.Split, name); ok {
			return nested, true
		}
	}
	return config.Layout{}, false
}

// newAllocateCmd returns the allocate command
func newAllocateCmd(flags *globalFlags) *cobra.Command {
	c := &computeFlags{}
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Print the initial panel sizes for an extent",
		Long: `Allocate sizes for the layout's panels in a container of the given extent.

Examples:
  splitpane allocate --extent 600
  splitpane allocate --extent 40 --split side --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, names, format, err := c.engineFor(flags)
			if err != nil {
				return err
			}
			defer engine.Close()

			return writeSizes(cmd.OutOrStdout(), format, panelSizes(names, engine.Sizes()))
		},
	}
	c.register(cmd)
	return cmd
}

// newDragCmd returns the drag command
func newDragCmd(flags *globalFlags) *cobra.Command {
	c := &computeFlags{}
	var dividerIndex int
	var delta float64

	cmd := &cobra.Command{
		Use:   "drag",
		Short: "Print panel sizes after dragging one divider",
		Long: `Allocate sizes for the extent, then drag divider --divider by --delta
along the layout axis. Only the two panels next to the divider change.

Examples:
  splitpane drag --extent 600 --divider 0 --delta 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, names, format, err := c.engineFor(flags)
			if err != nil {
				return err
			}
			defer engine.Close()

			if dividerIndex < 0 || dividerIndex >= engine.DividerCount() {
				return fmt.Errorf("divider %d out of range (layout has %d dividers)", dividerIndex, engine.DividerCount())
			}

			engine.PointerDown(dividerIndex, splitpane.Point{})
			engine.PointerMove(splitpane.Point{X: delta, Y: delta})
			engine.PointerUp()

			return writeSizes(cmd.OutOrStdout(), format, panelSizes(names, engine.Sizes()))
		},
	}
	c.register(cmd)
	cmd.Flags().IntVarP(&dividerIndex, "divider", "d", 0, "divider index (0 is between the first two panels)")
	cmd.Flags().Float64Var(&delta, "delta", 0, "pointer movement along the axis")
	return cmd
}

// newRescaleCmd returns the rescale command
func newRescaleCmd(flags *globalFlags) *cobra.Command {
	c := &computeFlags{}
	var to float64

	cmd := &cobra.Command{
		Use:   "rescale",
		Short: "Print panel sizes after the container is resized",
		Long: `Allocate sizes for --extent, then rescale them proportionally to --to.

Examples:
  splitpane rescale --extent 600 --to 801`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, names, format, err := c.engineFor(flags)
			if err != nil {
				return err
			}
			defer engine.Close()

			if !engine.ContainerExtentChanged(to) {
				return fmt.Errorf("cannot rescale: allocated sizes sum to zero")
			}
			return writeSizes(cmd.OutOrStdout(), format, panelSizes(names, engine.Sizes()))
		},
	}
	c.register(cmd)
	cmd.Flags().Float64Var(&to, "to", 0, "new container extent (required)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
