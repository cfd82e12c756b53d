package importer

import "strings"

// FieldSpec describes one canonical field: its stable internal name, the
// display-style header aliases it auto-maps from, and whether a value is
// required on every row.
type FieldSpec struct {
	Name     string
	Aliases  []string
	Required bool
}

// RuleSet parameterizes the pipeline per import variant, so the same code
// serves both the invitation upload and the candidate shortlist upload
// instead of duplicating the logic per screen.
type RuleSet struct {
	Fields       []FieldSpec
	ValidateName bool              // invitation variant enforces the name pattern
	Defaults     map[string]string // applied when a field resolves empty
	DateFields   []string          // opportunistically normalized to RFC 3339
}

// InvitationRules is the variant used by the invitation bulk upload
func InvitationRules() RuleSet {
	return RuleSet{
		Fields: []FieldSpec{
			{Name: "name", Aliases: []string{"candidate name", "full name"}, Required: true},
			{Name: "email", Aliases: []string{"email address", "e-mail"}, Required: true},
			{Name: "assessmentName", Aliases: []string{"assessment", "assessment name"}},
			{Name: "assessmentId", Aliases: []string{"assessment id"}},
			{Name: "expiresAt", Aliases: []string{"expires at", "expires", "expiry date"}},
		},
		ValidateName: true,
		Defaults: map[string]string{
			"assessmentName": "Default Assessment",
			"assessmentId":   "default_assessment",
		},
		DateFields: []string{"expiresAt"},
	}
}

// ShortlistRules is the variant used by the candidate shortlist upload.
// Optional fields carry no defaults here; absent values stay empty.
func ShortlistRules() RuleSet {
	return RuleSet{
		Fields: []FieldSpec{
			{Name: "name", Aliases: []string{"candidate name", "full name"}, Required: true},
			{Name: "email", Aliases: []string{"email address", "e-mail"}, Required: true},
			{Name: "fieldOfStudy", Aliases: []string{"field of study"}},
			{Name: "cgpa", Aliases: []string{"gpa"}},
			{Name: "skills", Aliases: []string{"skill set"}},
			{Name: "jobMatch", Aliases: []string{"job match", "job match (%)", "job description match (%)"}},
			{Name: "experience", Aliases: []string{"experience years", "experience (years)", "years of experience"}},
		},
	}
}

// ColumnMapping associates canonical field names with the literal source
// header each resolves from. A missing or empty entry means unmapped.
type ColumnMapping map[string]string

// AutoMap builds a mapping by case-insensitive header matching: a header
// whose lowercased, trimmed text equals a field's name or one of its aliases
// maps that field. The first matching header wins.
func AutoMap(headers []string, rules RuleSet) ColumnMapping {
	mapping := make(ColumnMapping, len(rules.Fields))
	for _, h := range headers {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for _, f := range rules.Fields {
			if _, taken := mapping[f.Name]; taken {
				continue
			}
			if matchesField(normalized, f) {
				mapping[f.Name] = h
			}
		}
	}
	return mapping
}

func matchesField(normalized string, f FieldSpec) bool {
	if normalized == strings.ToLower(f.Name) {
		return true
	}
	for _, alias := range f.Aliases {
		if normalized == alias {
			return true
		}
	}
	return false
}

// Merge applies explicit user overrides on top of an auto-built mapping.
// Overrides always take precedence; empty override values are ignored.
func (m ColumnMapping) Merge(overrides ColumnMapping) ColumnMapping {
	merged := make(ColumnMapping, len(m)+len(overrides))
	for field, header := range m {
		merged[field] = header
	}
	for field, header := range overrides {
		if strings.TrimSpace(header) != "" {
			merged[field] = header
		}
	}
	return merged
}

// Resolve verifies every required field ended up mapped. Returns a
// *MappingError listing the missing fields, in rule order, otherwise nil.
func (m ColumnMapping) Resolve(rules RuleSet) error {
	var missing []string
	for _, f := range rules.Fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(m[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &MappingError{Missing: missing}
	}
	return nil
}
