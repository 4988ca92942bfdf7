package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/MikeBiancalana/splitpane/internal/logger"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// initAnswers are the raw values collected by the init form.
type initAnswers struct {
	Axis      string
	Panels    string
	Thickness string
	MinSize   string
}

// newInitCmd returns the init command
func newInitCmd(flags *globalFlags) *cobra.Command {
	var yes, force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a layout file",
		Long: `Create a layout file interactively, or write the default layout with --yes.

The file is written to --config, or ~/.splitpane/layout.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLogFlags(flags); err != nil {
				return err
			}

			path := flags.configPath
			if path == "" {
				p, err := config.LayoutPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("layout file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check layout file: %w", err)
			}

			layout := config.DefaultLayout()
			if !yes {
				l, err := runInitForm()
				if err != nil {
					return err
				}
				layout = l
			}

			if err := config.WriteLayout(path, layout); err != nil {
				return err
			}
			logger.Debug("cli: layout written", "path", path, "panels", len(layout.Panels))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote layout: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "write the default layout without asking")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing layout file")
	return cmd
}

// runInitForm runs an interactive form describing a single-level layout
func runInitForm() (config.Layout, error) {
	answers := initAnswers{
		Axis:      "row",
		Panels:    "left, right",
		Thickness: "1",
		MinSize:   "10",
	}
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Axis").
				Options(
					huh.NewOption("Row (panels side by side)", "row"),
					huh.NewOption("Column (panels stacked)", "column"),
				).
				Value(&answers.Axis),
			huh.NewInput().
				Title("Panel names (comma-separated)").
				Value(&answers.Panels).
				Validate(func(s string) error {
					if len(splitNames(s)) == 0 {
						return fmt.Errorf("at least one panel is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Divider thickness").
				Value(&answers.Thickness).
				Validate(validateSize),
			huh.NewInput().
				Title("Default minimum panel size").
				Value(&answers.MinSize).
				Validate(validateSize),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write layout file?").
				Affirmative("Write").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return config.Layout{}, fmt.Errorf("form cancelled: %w", err)
	}
	if !confirmed {
		return config.Layout{}, fmt.Errorf("init cancelled")
	}
	return buildLayout(answers)
}

// buildLayout turns form answers into a validated layout.
func buildLayout(a initAnswers) (config.Layout, error) {
	names := splitNames(a.Panels)
	if len(names) == 0 {
		return config.Layout{}, fmt.Errorf("at least one panel is required")
	}

	thickness, err := parseSize(a.Thickness)
	if err != nil {
		return config.Layout{}, fmt.Errorf("divider thickness: %w", err)
	}
	minSize, err := parseSize(a.MinSize)
	if err != nil {
		return config.Layout{}, fmt.Errorf("minimum size: %w", err)
	}

	layout := config.Layout{
		Axis:             a.Axis,
		DividerThickness: &thickness,
		DefaultMinSize:   &minSize,
	}
	for _, name := range names {
		layout.Panels = append(layout.Panels, config.Panel{Name: name})
	}

	if err := layout.Validate(); err != nil {
		return config.Layout{}, err
	}
	return layout, nil
}

func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func parseSize(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q must not be negative", s)
	}
	return v, nil
}

func validateSize(s string) error {
	_, err := parseSize(s)
	return err
}
