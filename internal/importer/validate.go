package importer

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z .,'\-]*$`)
)

// ImportRow is one materialized row: canonical field values plus a per-field
// error map. An empty error map means the row is ready for submission.
type ImportRow struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

func (r ImportRow) Valid() bool { return len(r.Errors) == 0 }

// Materialize runs Stage C: resolves every raw row through the column
// mapping and validates it against the rule set. Validation failures never
// abort — every row is returned with its own error map, valid or not.
// Pure function of rows + mapping + rules; re-running yields identical output.
func Materialize(rows []RawRow, mapping ColumnMapping, rules RuleSet) []ImportRow {
	out := make([]ImportRow, 0, len(rows))
	for _, raw := range rows {
		out = append(out, materializeRow(raw, mapping, rules))
	}
	flagDuplicateEmails(out)
	return out
}

func materializeRow(raw RawRow, mapping ColumnMapping, rules RuleSet) ImportRow {
	row := ImportRow{
		Values: make(map[string]string, len(rules.Fields)),
		Errors: make(map[string]string),
	}

	for _, f := range rules.Fields {
		value := ""
		if header := mapping[f.Name]; header != "" {
			value = strings.TrimSpace(raw[header])
		}
		if value == "" {
			value = rules.Defaults[f.Name]
		}
		row.Values[f.Name] = value

		if f.Required && value == "" {
			row.Errors[f.Name] = f.Name + " is required"
		}
	}

	if email := row.Values["email"]; email != "" && !emailPattern.MatchString(email) {
		row.Errors["email"] = "Invalid email format"
	}
	if rules.ValidateName {
		if name := row.Values["name"]; name != "" && !namePattern.MatchString(name) {
			row.Errors["name"] = "Invalid name"
		}
	}

	for _, field := range rules.DateFields {
		if v := row.Values[field]; v != "" {
			if t, ok := parseDate(v); ok {
				row.Values[field] = t.UTC().Truncate(time.Second).Format(time.RFC3339)
			}
			// Unparseable optional dates keep the raw trimmed string, no error
		}
	}

	return row
}

// flagDuplicateEmails marks every row sharing an email value that appears
// more than once. Rows already carrying an email error keep it.
func flagDuplicateEmails(rows []ImportRow) {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		if email := strings.ToLower(r.Values["email"]); email != "" {
			counts[email]++
		}
	}
	for _, r := range rows {
		email := strings.ToLower(r.Values["email"])
		if email == "" || counts[email] < 2 {
			continue
		}
		if _, taken := r.Errors["email"]; !taken {
			r.Errors["email"] = "Duplicate email"
		}
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
