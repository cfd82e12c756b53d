package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize_EndToEndCSVScenario(t *testing.T) {
	t.Parallel()

	rules := InvitationRules()
	rows, headers, err := ParseCSV("Candidate Name,Email\nJohn Doe,john@x.com\nJane Roe,not-an-email\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	mapping := AutoMap(headers, rules)
	require.NoError(t, mapping.Resolve(rules))

	out := Materialize(rows, mapping, rules)
	require.Len(t, out, 2)

	assert.True(t, out[0].Valid())
	assert.Equal(t, "John Doe", out[0].Values["name"])

	assert.False(t, out[1].Valid())
	assert.Equal(t, "Invalid email format", out[1].Errors["email"])
	assert.Empty(t, out[1].Errors["name"])
}

func TestMaterialize_DuplicateEmails(t *testing.T) {
	t.Parallel()

	rules := InvitationRules()
	mapping := ColumnMapping{"name": "Name", "email": "Email"}
	rows := []RawRow{
		{"Name": "A", "Email": "a@x.com"},
		{"Name": "B", "Email": "b@x.com"},
		{"Name": "C", "Email": "a@x.com"},
	}

	out := Materialize(rows, mapping, rules)
	require.Len(t, out, 3)
	assert.Equal(t, "Duplicate email", out[0].Errors["email"])
	assert.NotContains(t, out[1].Errors, "email")
	assert.Equal(t, "Duplicate email", out[2].Errors["email"])
}

func TestMaterialize_RequiredFields(t *testing.T) {
	t.Parallel()

	rules := InvitationRules()
	mapping := ColumnMapping{"name": "Name", "email": "Email"}
	out := Materialize([]RawRow{{"Name": "   ", "Email": "a@x.com"}}, mapping, rules)

	require.Len(t, out, 1)
	assert.Equal(t, "name is required", out[0].Errors["name"])
}

func TestMaterialize_NamePattern(t *testing.T) {
	t.Parallel()

	rules := InvitationRules()
	mapping := ColumnMapping{"name": "Name", "email": "Email"}

	out := Materialize([]RawRow{
		{"Name": "Jane O'Connor-Smith Jr.", "Email": "jane@x.com"},
		{"Name": "robot<script>", "Email": "robot@x.com"},
	}, mapping, rules)

	assert.NotContains(t, out[0].Errors, "name")
	assert.Equal(t, "Invalid name", out[1].Errors["name"])

	// Shortlist variant does not validate names
	out = Materialize([]RawRow{{"Name": "robot<script>", "Email": "r@x.com"}},
		ColumnMapping{"name": "Name", "email": "Email"}, ShortlistRules())
	assert.NotContains(t, out[0].Errors, "name")
}

func TestMaterialize_DateNormalization(t *testing.T) {
	t.Parallel()

	rules := InvitationRules()
	mapping := ColumnMapping{"name": "Name", "email": "Email", "expiresAt": "Expires"}

	out := Materialize([]RawRow{
		{"Name": "A", "Email": "a@x.com", "Expires": "2025-07-01"},
		{"Name": "B", "Email": "b@x.com", "Expires": "next tuesday"},
	}, mapping, rules)

	assert.Equal(t, "2025-07-01T00:00:00Z", out[0].Values["expiresAt"])
	// Unparseable dates keep the raw trimmed string with no error
	assert.Equal(t, "next tuesday", out[1].Values["expiresAt"])
	assert.True(t, out[1].Valid())
}

func TestMaterialize_InvitationDefaults(t *testing.T) {
	t.Parallel()

	mapping := ColumnMapping{"name": "Name", "email": "Email"}
	row := RawRow{"Name": "A", "Email": "a@x.com"}

	out := Materialize([]RawRow{row}, mapping, InvitationRules())
	assert.Equal(t, "Default Assessment", out[0].Values["assessmentName"])
	assert.Equal(t, "default_assessment", out[0].Values["assessmentId"])

	// The shortlist variant leaves unmapped optional fields empty
	out = Materialize([]RawRow{row}, mapping, ShortlistRules())
	assert.Empty(t, out[0].Values["fieldOfStudy"])
	assert.Empty(t, out[0].Values["skills"])
}

func TestMaterialize_Idempotent(t *testing.T) {
	t.Parallel()

	rules := InvitationRules()
	mapping := ColumnMapping{"name": "Name", "email": "Email", "expiresAt": "Expires"}
	rows := []RawRow{
		{"Name": "A", "Email": "dup@x.com", "Expires": "2025-07-01"},
		{"Name": "", "Email": "dup@x.com"},
	}

	once := Materialize(rows, mapping, rules)
	twice := Materialize(rows, mapping, rules)
	assert.Equal(t, once, twice)
}
