package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParse_CSV(t *testing.T) {
	t.Parallel()

	csv := "Candidate Name,Email\nJohn Doe,john@x.com\nJane Roe,not-an-email\n"
	rows, headers, err := Parse(strings.NewReader(csv), "csv")

	require.NoError(t, err)
	assert.Equal(t, []string{"Candidate Name", "Email"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[0]["Candidate Name"])
	assert.Equal(t, "not-an-email", rows[1]["Email"])
}

func TestParse_CSVStripsBOMAndSkipsEmptyRows(t *testing.T) {
	t.Parallel()

	csv := "\xef\xbb\xbfName,Email\nJohn,john@x.com\n,\n ,  \nJane,jane@x.com\n"
	rows, headers, err := Parse(strings.NewReader(csv), ".csv")

	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Email"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane", rows[1]["Name"])
}

func TestParse_CSVQuotedFields(t *testing.T) {
	t.Parallel()

	csv := "Name,Note\n\"Doe, John\",\"said \"\"hi\"\"\"\n"
	rows, _, err := Parse(strings.NewReader(csv), "csv")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Doe, John", rows[0]["Name"])
	assert.Equal(t, `said "hi"`, rows[0]["Note"])
}

func TestParse_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, _, err := Parse(strings.NewReader("x"), "pdf")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "unsupported file type")
}

func TestParse_MalformedCSVFailsFast(t *testing.T) {
	t.Parallel()

	csv := "Name,Email\n\"unterminated,foo\n"
	rows, _, err := Parse(strings.NewReader(csv), "csv")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Nil(t, rows)
}

func TestParse_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "Email"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"John Doe", "john@x.com"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"", ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Jane Roe", "jane@x.com"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, headers, err := Parse(bytes.NewReader(buf.Bytes()), ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Email"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[0]["Name"])
	assert.Equal(t, "jane@x.com", rows[1]["Email"])
}

func TestParse_CorruptXLSX(t *testing.T) {
	t.Parallel()

	_, _, err := Parse(strings.NewReader("this is not a zip archive"), "xlsx")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
