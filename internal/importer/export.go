package importer

import "strings"

// ExportCSV renders records as CSV text: one header row, then one row per
// record in header order. Every value is wrapped in double quotes with
// embedded quotes doubled; missing fields render as empty strings. Rows are
// joined by newline, so parsing the output recovers the original values.
func ExportCSV(records []map[string]string, headers []string) string {
	var b strings.Builder

	writeRow := func(values []string) {
		for i, v := range values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v, `"`, `""`))
			b.WriteByte('"')
		}
	}

	writeRow(headers)
	for _, record := range records {
		b.WriteByte('\n')
		values := make([]string, len(headers))
		for i, h := range headers {
			values[i] = record[h]
		}
		writeRow(values)
	}

	return b.String()
}
