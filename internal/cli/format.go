package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "tsv", "":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, tsv, csv)", s)
	}
}

// panelSize is one output row.
type panelSize struct {
	Index int     `json:"index"`
	Name  string  `json:"name,omitempty"`
	Size  float64 `json:"size"`
}

func panelSizes(names []string, sizes []float64) []panelSize {
	rows := make([]panelSize, len(sizes))
	for i, size := range sizes {
		rows[i] = panelSize{Index: i, Size: size}
		if i < len(names) {
			rows[i].Name = names[i]
		}
	}
	return rows
}

func writeSizes(w io.Writer, format OutputFormat, rows []panelSize) error {
	switch format {
	case FormatJSON:
		return formatSizesJSON(w, rows)
	case FormatCSV:
		return formatSizesCSV(w, rows)
	default:
		return formatSizesTSV(w, rows)
	}
}

func formatSizesJSON(w io.Writer, rows []panelSize) error {
	return json.NewEncoder(w).Encode(rows)
}

func formatSizesTSV(w io.Writer, rows []panelSize) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "INDEX\tPANEL\tSIZE")
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Index, name, formatFloat(r.Size))
	}
	return tw.Flush()
}

func formatSizesCSV(w io.Writer, rows []panelSize) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"INDEX", "PANEL", "SIZE"})
	for _, r := range rows {
		record := []string{strconv.Itoa(r.Index), r.Name, formatFloat(r.Size)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
