package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/alexshd/analphi"
)

// tableColumns returns "beta" followed by the formatted property keys.
func tableColumns(props []analphi.Property, keyFormat string) []string {
	if keyFormat == "" {
		keyFormat = "%s"
	}
	cols := make([]string, 0, len(props)+1)
	cols = append(cols, "beta")
	for _, p := range props {
		cols = append(cols, fmt.Sprintf(keyFormat, p))
	}
	return cols
}

// tableDoc is the YAML shape: column names in order, then one row per beta.
type tableDoc struct {
	Columns []string    `yaml:"columns"`
	Rows    [][]float64 `yaml:"rows"`
}

func writeTable(w io.Writer, format string, columns []string, table analphi.Table) error {
	rows := 0
	if len(columns) > 0 {
		rows = len(table[columns[0]])
	}

	switch format {
	case "yaml":
		doc := tableDoc{Columns: columns, Rows: make([][]float64, rows)}
		for i := range doc.Rows {
			doc.Rows[i] = make([]float64, len(columns))
			for j, c := range columns {
				doc.Rows[i][j] = table[c][i]
			}
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case "", "tsv":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(columns, "\t"))
		for i := 0; i < rows; i++ {
			cells := make([]string, len(columns))
			for j, c := range columns {
				cells[j] = strconv.FormatFloat(table[c][i], 'g', 10, 64)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		return tw.Flush()
	}

	return fmt.Errorf("output must be tsv or yaml, got %q", format)
}
