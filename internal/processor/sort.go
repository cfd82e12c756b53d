package processor

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/assesshub-api/internal/model"
)

// Keys compared numerically; everything else compares as a lowercased string.
var numericKeys = map[string]bool{
	"cgpa":       true,
	"jobMatch":   true,
	"experience": true,
}

// Sort returns a copy of records ordered by spec. An empty key is the
// identity: the input slice is returned as-is, order untouched. Values are
// looked up through the accessor so the same engine serves candidates and
// invitations. Unparseable numeric values compare as 0.
func Sort[T any](records []T, spec model.SortSpec, value func(T, string) string) []T {
	if spec.Key == "" {
		return records
	}

	out := append([]T(nil), records...)
	desc := spec.Direction == model.SortDesc

	sort.Slice(out, func(i, j int) bool {
		a, b := value(out[i], spec.Key), value(out[j], spec.Key)
		if desc {
			a, b = b, a
		}
		return compare(a, b, spec.Key)
	})

	return out
}

func compare(a, b, key string) bool {
	if numericKeys[key] {
		return parseNum(a) < parseNum(b)
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

func parseNum(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// CandidateValue is the sort accessor for CandidateRecord
func CandidateValue(r model.CandidateRecord, key string) string {
	switch key {
	case "name":
		return r.Name
	case "email":
		return r.Email
	case "fieldOfStudy":
		return r.FieldOfStudy
	case "cgpa":
		return strconv.FormatFloat(r.CGPA, 'f', -1, 64)
	case "jobMatch":
		return strconv.Itoa(r.JobMatchPercent)
	case "experience":
		return strconv.Itoa(r.ExperienceYears)
	case "strength":
		return r.Strength
	}
	return ""
}

// InvitationValue is the sort accessor for Invitation. Timestamps render as
// RFC 3339 so their lexicographic order matches chronological order.
func InvitationValue(inv model.Invitation, key string) string {
	switch key {
	case "name":
		return inv.Name
	case "email":
		return inv.Email
	case "assessmentName":
		return inv.AssessmentName
	case "status":
		return inv.Status
	case "sentAt":
		return inv.SentAt.UTC().Format(time.RFC3339)
	case "expiresAt":
		return inv.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return ""
}
