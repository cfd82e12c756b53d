package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV_QuotesEveryField(t *testing.T) {
	t.Parallel()

	headers := []string{"Name", "Email"}
	records := []map[string]string{
		{"Name": "John Doe", "Email": "john@x.com"},
		{"Name": "Jane Roe"}, // missing fields render empty
	}

	csv := ExportCSV(records, headers)
	assert.Equal(t, "\"Name\",\"Email\"\n\"John Doe\",\"john@x.com\"\n\"Jane Roe\",\"\"", csv)
}

func TestExportCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	headers := []string{"Name", "Email", "Note"}
	records := []map[string]string{
		{"Name": "John Doe", "Email": "john@x.com", "Note": "plain"},
		{"Name": `Jane "JJ" Doe`, "Email": "jane@x.com", "Note": "has, comma"},
	}

	rows, parsedHeaders, err := ParseCSV(ExportCSV(records, headers))
	require.NoError(t, err)

	assert.Equal(t, headers, parsedHeaders)
	require.Len(t, rows, len(records))
	for i, record := range records {
		for _, h := range headers {
			assert.Equal(t, record[h], rows[i][h], "row %d column %s", i, h)
		}
	}
}

func TestExportCSV_EmptyRecordSet(t *testing.T) {
	t.Parallel()

	csv := ExportCSV(nil, []string{"Name", "Email"})
	assert.Equal(t, "\"Name\",\"Email\"", csv)
}
