package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	table := NewTableData("ID", "Email")

	assert.Equal(t, []string{"ID", "Email"}, table.Headers())
	assert.Empty(t, table.Rows())

	table.AddRow("add60fd1792f4ab99a53e2f859482c59", "alice@example.com")
	table.AddRow("1f0e2d3c4b5a69788796a5b4c3d2e1f0", "bob@example.com")

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "alice@example.com", rows[0][1])
	assert.Equal(t, "bob@example.com", rows[1][1])
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("ID", "Email")
	table.AddRow("add60fd1792f4ab99a53e2f859482c59", "alice@example.com")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "EMAIL")
	assert.Contains(t, output, "add60fd1792f4ab99a53e2f859482c59")
	assert.Contains(t, output, "alice@example.com")
}

func TestSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, [][2]string{
		{"Identity", "add60fd1792f4ab99a53e2f859482c59"},
		{"Token", "eyJhbGciOiJIUzI1NiJ9.e30.sig"},
	}))

	output := buf.String()
	assert.Contains(t, output, "Identity")
	assert.Contains(t, output, "add60fd1792f4ab99a53e2f859482c59")
	assert.Contains(t, output, "Token")
}
