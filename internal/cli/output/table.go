package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableRenderer is implemented by values that can lay themselves out as
// rows under column headers.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// newTable configures a borderless, left-aligned tablewriter suitable for
// terminal listings.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// PrintTable renders a TableRenderer to the writer.
func PrintTable(w io.Writer, data TableRenderer) error {
	table := newTable(w)
	table.SetHeader(data.Headers())
	table.SetAutoFormatHeaders(true)
	for _, row := range data.Rows() {
		table.Append(row)
	}
	table.Render()
	return nil
}

// TableData collects ad-hoc rows for commands that build their listing
// imperatively.
type TableData struct {
	headers []string
	rows    [][]string
}

// NewTableData creates a TableData with the given column headers.
func NewTableData(headers ...string) *TableData {
	return &TableData{headers: headers}
}

// AddRow appends one row.
func (t *TableData) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *TableData) Headers() []string {
	return t.headers
}

func (t *TableData) Rows() [][]string {
	return t.rows
}

// SimpleTable renders label/value pairs without a header row, for
// single-record output like a freshly minted token.
func SimpleTable(w io.Writer, pairs [][2]string) error {
	table := newTable(w)
	table.SetAutoFormatHeaders(false)
	table.SetColumnSeparator(":")
	for _, pair := range pairs {
		table.Append([]string{pair[0], pair[1]})
	}
	table.Render()
	return nil
}
