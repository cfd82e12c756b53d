package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMap_ExactAndAliasMatching(t *testing.T) {
	t.Parallel()

	headers := []string{"Candidate Name", "EMAIL", "Assessment", "unrelated"}
	mapping := AutoMap(headers, InvitationRules())

	assert.Equal(t, "Candidate Name", mapping["name"])
	assert.Equal(t, "EMAIL", mapping["email"])
	assert.Equal(t, "Assessment", mapping["assessmentName"])
	assert.NotContains(t, mapping, "expiresAt")
}

func TestAutoMap_FirstMatchingHeaderWins(t *testing.T) {
	t.Parallel()

	mapping := AutoMap([]string{"name", "Full Name"}, InvitationRules())
	assert.Equal(t, "name", mapping["name"])
}

func TestAutoMap_ShortlistDisplayHeaders(t *testing.T) {
	t.Parallel()

	headers := []string{
		"Candidate Name", "Email", "Field of Study", "CGPA",
		"Skills", "Job Description Match (%)", "Experience (Years)",
	}
	mapping := AutoMap(headers, ShortlistRules())

	assert.Equal(t, "Job Description Match (%)", mapping["jobMatch"])
	assert.Equal(t, "Experience (Years)", mapping["experience"])
	assert.Equal(t, "Field of Study", mapping["fieldOfStudy"])
}

func TestMerge_OverridesTakePrecedence(t *testing.T) {
	t.Parallel()

	auto := ColumnMapping{"name": "Name", "email": "Email"}
	merged := auto.Merge(ColumnMapping{"email": "Work Email", "expiresAt": "Deadline", "name": ""})

	assert.Equal(t, "Name", merged["name"]) // empty override ignored
	assert.Equal(t, "Work Email", merged["email"])
	assert.Equal(t, "Deadline", merged["expiresAt"])

	// Merging never mutates the receiver
	assert.Equal(t, "Email", auto["email"])
}

func TestResolve_ReportsMissingRequiredFields(t *testing.T) {
	t.Parallel()

	rules := InvitationRules()

	err := ColumnMapping{"name": "Name", "email": "Email"}.Resolve(rules)
	assert.NoError(t, err)

	err = ColumnMapping{"assessmentName": "Assessment"}.Resolve(rules)
	var mappingErr *MappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Equal(t, []string{"name", "email"}, mappingErr.Missing)
}
