package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPanelYAML = `panels:
  - name: left
  - name: right
`

const nestedYAML = `axis: row
panels:
  - name: files
    preferred_size: 20
  - name: side
    split:
      axis: column
      default_min_size: 1
      panels:
        - name: top
        - name: bottom
          preferred_size: 8
`

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SPLITPANE_DATA_DIR", t.TempDir())
	t.Setenv("SPLITPANE_AXIS", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeLayoutFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func decodeSizes(t *testing.T, out string) []panelSize {
	t.Helper()
	var rows []panelSize
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

func TestAllocateCommand(t *testing.T) {
	path := writeLayoutFile(t, twoPanelYAML)

	out, err := runCmd(t, "allocate", "--config", path, "--extent", "600", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []panelSize{
		{Index: 0, Name: "left", Size: 299},
		{Index: 1, Name: "right", Size: 300},
	}, decodeSizes(t, out))
}

func TestAllocateFormats(t *testing.T) {
	path := writeLayoutFile(t, twoPanelYAML)

	out, err := runCmd(t, "allocate", "-c", path, "--extent", "600", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "INDEX,PANEL,SIZE\n0,left,299\n1,right,300\n", out)

	out, err = runCmd(t, "allocate", "-c", path, "--extent", "600")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"INDEX", "PANEL", "SIZE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "left", "299"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "right", "300"}, strings.Fields(lines[2]))
}

func TestAllocateNestedSplit(t *testing.T) {
	path := writeLayoutFile(t, nestedYAML)

	out, err := runCmd(t, "allocate", "-c", path, "--extent", "21", "--split", "side", "-f", "json")
	require.NoError(t, err)
	assert.Equal(t, []panelSize{
		{Index: 0, Name: "top", Size: 12},
		{Index: 1, Name: "bottom", Size: 8},
	}, decodeSizes(t, out))

	_, err = runCmd(t, "allocate", "-c", path, "--extent", "21", "--split", "files")
	assert.ErrorContains(t, err, `no panel named "files"`)
}

func TestAllocateDefaultLayoutWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := runCmd(t, "allocate", "-c", path, "--extent", "120", "-f", "json")
	require.NoError(t, err)

	rows := decodeSizes(t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, "files", rows[0].Name)
	assert.Equal(t, "side", rows[2].Name)
}

func TestAllocateErrors(t *testing.T) {
	path := writeLayoutFile(t, twoPanelYAML)

	_, err := runCmd(t, "allocate", "-c", path)
	assert.ErrorContains(t, err, "extent")

	_, err = runCmd(t, "allocate", "-c", path, "--extent", "100", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")

	bad := writeLayoutFile(t, "panels: [")
	_, err = runCmd(t, "allocate", "-c", bad, "--extent", "100")
	assert.ErrorContains(t, err, "failed to load layout")
}

func TestDragCommand(t *testing.T) {
	path := writeLayoutFile(t, twoPanelYAML)

	out, err := runCmd(t, "drag", "-c", path, "--extent", "600", "--divider", "0", "--delta", "50", "-f", "json")
	require.NoError(t, err)
	assert.Equal(t, []panelSize{
		{Index: 0, Name: "left", Size: 349},
		{Index: 1, Name: "right", Size: 250},
	}, decodeSizes(t, out))

	out, err = runCmd(t, "drag", "-c", path, "--extent", "600", "--delta", "-1000", "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "INDEX,PANEL,SIZE\n0,left,10\n1,right,589\n", out)

	_, err = runCmd(t, "drag", "-c", path, "--extent", "600", "--divider", "1", "--delta", "5")
	assert.ErrorContains(t, err, "divider 1 out of range")
}

func TestRescaleCommand(t *testing.T) {
	path := writeLayoutFile(t, `panels:
  - name: left
    preferred_size: 200
  - name: right
    preferred_size: 399
`)

	out, err := runCmd(t, "rescale", "-c", path, "--extent", "600", "--to", "1199", "-f", "json")
	require.NoError(t, err)
	assert.Equal(t, []panelSize{
		{Index: 0, Name: "left", Size: 400},
		{Index: 1, Name: "right", Size: 798},
	}, decodeSizes(t, out))

	_, err = runCmd(t, "rescale", "-c", path, "--extent", "600")
	assert.ErrorContains(t, err, "to")
}

func TestRescaleZeroTotal(t *testing.T) {
	path := writeLayoutFile(t, `default_min_size: 0
panels:
  - name: empty
    preferred_size: 0
`)

	_, err := runCmd(t, "rescale", "-c", path, "--extent", "0", "--to", "100")
	assert.ErrorContains(t, err, "sum to zero")
}

func TestInitCommandYes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "layout.yaml")

	out, err := runCmd(t, "init", "--yes", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := config.LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLayout(), loaded)

	_, err = runCmd(t, "init", "--yes", "-c", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = runCmd(t, "init", "--yes", "--force", "-c", path)
	assert.NoError(t, err)
}

func TestBuildLayout(t *testing.T) {
	tests := []struct {
		name    string
		answers initAnswers
		panels  []string
		wantErr string
	}{
		{
			name:    "row of three",
			answers: initAnswers{Axis: "row", Panels: "a, b ,c", Thickness: "1", MinSize: "10"},
			panels:  []string{"a", "b", "c"},
		},
		{
			name:    "empty names are dropped",
			answers: initAnswers{Axis: "column", Panels: "a,,b,", Thickness: "0", MinSize: "0"},
			panels:  []string{"a", "b"},
		},
		{
			name:    "no panels",
			answers: initAnswers{Axis: "row", Panels: " , ", Thickness: "1", MinSize: "10"},
			wantErr: "at least one panel",
		},
		{
			name:    "bad thickness",
			answers: initAnswers{Axis: "row", Panels: "a", Thickness: "wide", MinSize: "10"},
			wantErr: "divider thickness",
		},
		{
			name:    "negative minimum",
			answers: initAnswers{Axis: "row", Panels: "a", Thickness: "1", MinSize: "-3"},
			wantErr: "minimum size",
		},
		{
			name:    "NaN is caught by validation",
			answers: initAnswers{Axis: "row", Panels: "a", Thickness: "NaN", MinSize: "1"},
			wantErr: "divider_thickness",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := buildLayout(tt.answers)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.answers.Axis, layout.Axis)

			var names []string
			for _, p := range layout.Panels {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.panels, names)
		})
	}
}

func TestFindSplit(t *testing.T) {
	layout := config.DefaultLayout()

	side, ok := findSplit(layout, "side")
	require.True(t, ok)
	assert.Equal(t, "column", side.Axis)

	_, ok = findSplit(layout, "editor")
	assert.False(t, ok, "leaf panels have no split")

	_, ok = findSplit(layout, "nope")
	assert.False(t, ok)
}
