package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "table", input: "table", want: FormatTable},
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "json", input: "json", want: FormatJSON},
		{name: "JSON uppercase", input: "JSON", want: FormatJSON},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "whitespace trimmed", input: "  table  ", want: FormatTable},
		{name: "invalid format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "table", FormatTable.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "yaml", FormatYAML.String())
}

type accountRow struct {
	Email string `json:"email" yaml:"email"`
}

func TestPrinterPrint(t *testing.T) {
	table := NewTableData("Email")
	table.AddRow("alice@example.com")

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).Print(table))
		assert.Contains(t, buf.String(), "alice@example.com")
	})

	t.Run("table falls back to json for plain values", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).Print(accountRow{Email: "bob@example.com"}))
		assert.Contains(t, buf.String(), `"email": "bob@example.com"`)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		rows := []accountRow{{Email: "alice@example.com"}, {Email: "bob@example.com"}}
		require.NoError(t, NewPrinter(&buf, FormatJSON).Print(rows))
		assert.Contains(t, buf.String(), `"email": "alice@example.com"`)
		assert.Contains(t, buf.String(), `"email": "bob@example.com"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		rows := []accountRow{{Email: "alice@example.com"}}
		require.NoError(t, NewPrinter(&buf, FormatYAML).Print(rows))
		assert.Contains(t, buf.String(), "- email: alice@example.com")
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, NewPrinter(&buf, Format("xml")).Print(table))
	})
}
