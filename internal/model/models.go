package model

import (
	"time"

	"github.com/google/uuid"
)

// ── Invitations ─────────────────────────────────────────

// Invitation statuses. Transitions only move forward:
// sent → accepted → completed, with expired reachable from sent or accepted.
const (
	StatusSent      = "sent"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// NormalizeStatus maps legacy client values onto the stored set.
// Older clients send "pending" where the API stores "sent".
func NormalizeStatus(s string) string {
	if s == "pending" {
		return StatusSent
	}
	return s
}

func ValidStatus(s string) bool {
	switch s {
	case StatusSent, StatusAccepted, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// CanTransition reports whether an invitation may move from one status to
// another. Forward moves in sent → accepted → completed are allowed (including
// skipping accepted); expired is reachable from sent or accepted only.
func CanTransition(from, to string) bool {
	switch from {
	case StatusSent:
		return to == StatusAccepted || to == StatusCompleted || to == StatusExpired
	case StatusAccepted:
		return to == StatusCompleted || to == StatusExpired
	}
	return false
}

// Invitation represents a sent/tracked assessment invitation
type Invitation struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	AssessmentName string    `json:"assessmentName"`
	AssessmentID   string    `json:"assessmentId"`
	Status         string    `json:"status"`
	Token          string    `json:"-"`
	SentAt         time.Time `json:"sentAt"`
	ExpiresAt      time.Time `json:"expiresAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EffectiveStatus returns the status after accounting for time-based expiry.
// A record can be logically expired while its stored status still reads "sent";
// every screen that displays or filters by status must go through this.
func (i *Invitation) EffectiveStatus(now time.Time) string {
	if (i.Status == StatusSent || i.Status == StatusAccepted) && !now.Before(i.ExpiresAt) {
		return StatusExpired
	}
	return i.Status
}

// ── Candidates ──────────────────────────────────────────

// CandidateRecord represents one candidate in the shortlisting domain.
// Records are immutable once loaded; filtering and sorting produce derived
// views and never mutate the source collection.
type CandidateRecord struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	FieldOfStudy    string    `json:"fieldOfStudy"`
	CGPA            float64   `json:"cgpa"`
	Skills          []string  `json:"skills"`
	JobMatchPercent int       `json:"jobMatchPercent"`
	Strength        string    `json:"strength,omitempty"`
	ExperienceYears int       `json:"experienceYears"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ── Filtering & sorting ─────────────────────────────────

// Experience buckets. Years 4-5 intentionally fall outside every named bucket;
// they only pass under "any". Flagged for product clarification, do not "fix".
const (
	ExperienceAny          = "any"
	ExperienceZero         = "0"
	ExperienceOneToThree   = "1-3"
	ExperienceMoreThanFive = "5+"
)

// JobMatchRange is a closed interval over 0-100, inclusive on both ends.
// Low must not exceed High; the engines do not repair inverted ranges.
type JobMatchRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// FilterCriteria describes the active shortlist filter state. The zero value
// matches everything (empty search, no field constraint, full match range
// when High is set to 100 by the caller).
type FilterCriteria struct {
	SearchText       string        `json:"searchText"`
	FieldOfStudyIn   []string      `json:"fieldOfStudyIn"`
	MinCGPA          float64       `json:"minCgpa"`
	JobMatchRange    JobMatchRange `json:"jobMatchRange"`
	ExperienceBucket string        `json:"experienceBucket"`
}

// Sort directions
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortSpec is a single sort key plus direction. An empty key means identity:
// the input collection is returned unchanged. Direction toggling on repeated
// clicks is a UI convention; callers pass an explicit direction every call.
type SortSpec struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// Pagination describes one page of a larger result set
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ── Dashboard ───────────────────────────────────────────

type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DashboardSummary is the aggregated response for the analytics view.
// StatusCounts is keyed by effective status, not stored status.
type DashboardSummary struct {
	Total        int            `json:"total"`
	StatusCounts map[string]int `json:"statusCounts"`
	SentPerDay   []DayCount     `json:"sentPerDay"`
	GeneratedAt  time.Time      `json:"generatedAt"`
}
