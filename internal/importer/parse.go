package importer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawRow is one parsed data row: source column header, exactly as it appears
// in row 1 of the file, mapped to the cell's string value.
type RawRow map[string]string

// Parse decodes an uploaded file into raw rows keyed by header. The header
// row defines column names; rows whose cells are all empty are skipped.
// Returns the rows, the headers in source order, and a *ParseError when the
// extension is unrecognized or the bytes cannot be decoded as that format.
func Parse(r io.Reader, ext string) ([]RawRow, []string, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		return parseCSV(r)
	case "xlsx":
		return parseXLSX(r)
	}
	return nil, nil, &ParseError{Reason: "unsupported file type: " + ext}
}

// ParseCSV parses CSV text. Convenience wrapper used by the export
// round-trip and tests.
func ParseCSV(text string) ([]RawRow, []string, error) {
	return Parse(strings.NewReader(text), "csv")
}

func parseCSV(r io.Reader) ([]RawRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, &ParseError{Reason: "failed to read CSV header row", Err: err}
	}

	// Strip UTF-8 BOM from the first header (Windows exports)
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\xef\xbb\xbf")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &ParseError{Reason: "malformed CSV content", Err: err}
		}
		if row, ok := toRow(headers, record); ok {
			rows = append(rows, row)
		}
	}

	return rows, headers, nil
}

func parseXLSX(r io.Reader) ([]RawRow, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &ParseError{Reason: "failed to open XLSX file", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &ParseError{Reason: "XLSX file has no worksheets"}
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, &ParseError{Reason: "failed to read XLSX rows", Err: err}
	}
	if len(all) == 0 {
		return nil, nil, &ParseError{Reason: "XLSX file has no header row"}
	}

	headers := make([]string, len(all[0]))
	for i, h := range all[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []RawRow
	for _, record := range all[1:] {
		if row, ok := toRow(headers, record); ok {
			rows = append(rows, row)
		}
	}

	return rows, headers, nil
}

// toRow zips a record against the headers, reporting false for all-empty rows
func toRow(headers, record []string) (RawRow, bool) {
	row := make(RawRow, len(headers))
	empty := true
	for i, h := range headers {
		var v string
		if i < len(record) {
			v = record[i]
		}
		if strings.TrimSpace(v) != "" {
			empty = false
		}
		row[h] = v
	}
	if empty {
		return nil, false
	}
	return row, true
}
