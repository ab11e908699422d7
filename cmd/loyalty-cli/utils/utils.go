package utils

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// NewTable returns a rounded table with the given header that renders
// to stdout; Render also returns the text for reuse in run reports.
func NewTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	return t
}
