package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-PatentClient/internal/domain/patent"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printTable renders headers and rows to stdout.
func printTable(cmd *cobra.Command, headers []string, rows [][]any) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = formatValue(v)
		}
		t.AppendRow(row)
	}
	t.Render()
}

// printDict renders one dictionary as a two-column key/value table, keys
// sorted.  Nested collections are shown as counts.
func printDict(cmd *cobra.Command, d map[string]any) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{k, d[k]})
	}
	printTable(cmd, []string{"Field", "Value"}, rows)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case patent.Date:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []map[string]any:
		return fmt.Sprintf("[%d]", len(x))
	case map[string]any:
		return fmt.Sprintf("{%d}", len(x))
	default:
		return fmt.Sprint(x)
	}
}

// PrintError writes a formatted error to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
	if errors.IsCode(err, errors.ErrCodeUnknownFilterField) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint: run 'keyip fields' for the allowed filters")
	}
}

//Personal.AI order the ending
