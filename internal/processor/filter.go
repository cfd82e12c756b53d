// Package processor holds the pure record-processing core: filtering,
// sorting and pagination over in-memory candidate and invitation
// collections. Nothing in here touches the database or mutates its inputs.
package processor

import (
	"strings"

	"github.com/yourusername/assesshub-api/internal/model"
)

// Filter returns the records matching every active criterion, in input order.
// Dimensions combine with AND; within the search dimension name, email and
// skills combine with OR. The source slice is never mutated.
func Filter(records []model.CandidateRecord, c model.FilterCriteria) []model.CandidateRecord {
	out := make([]model.CandidateRecord, 0, len(records))
	search := strings.ToLower(strings.TrimSpace(c.SearchText))

	for _, r := range records {
		if !matchesSearch(r, search) {
			continue
		}
		if len(c.FieldOfStudyIn) > 0 && !contains(c.FieldOfStudyIn, r.FieldOfStudy) {
			continue
		}
		if r.CGPA < c.MinCGPA {
			continue
		}
		if r.JobMatchPercent < c.JobMatchRange.Low || r.JobMatchPercent > c.JobMatchRange.High {
			continue
		}
		if !inExperienceBucket(r.ExperienceYears, c.ExperienceBucket) {
			continue
		}
		out = append(out, r)
	}

	return out
}

func matchesSearch(r model.CandidateRecord, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Email), search) {
		return true
	}
	for _, s := range r.Skills {
		if strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}

// inExperienceBucket dispatches on the bucket constants. Years 4-5 satisfy
// none of the named buckets and pass only under "any" — this boundary gap is
// intentional source behavior (see model).
func inExperienceBucket(years int, bucket string) bool {
	switch bucket {
	case "", model.ExperienceAny:
		return true
	case model.ExperienceZero:
		return years == 0
	case model.ExperienceOneToThree:
		return years >= 1 && years <= 3
	case model.ExperienceMoreThanFive:
		return years > 5
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
