package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/assesshub-api/internal/importer"
	"github.com/yourusername/assesshub-api/internal/model"
	"github.com/yourusername/assesshub-api/internal/processor"
	"github.com/yourusername/assesshub-api/internal/repository"
)

// exportHeaders is the display-style column set for shortlist CSV exports
var exportHeaders = []string{
	"Candidate Name", "Email", "Field of Study", "CGPA", "Skills",
	"Job Description Match (%)", "Strength", "Experience (Years)",
}

type CandidateHandler struct {
	repo *repository.CandidateRepo
}

func NewCandidateHandler(repo *repository.CandidateRepo) *CandidateHandler {
	return &CandidateHandler{repo: repo}
}

// List handles GET /candidates
// Filtering, sorting and pagination run in-process through the processor
// engines; criteria arrive as explicit query parameters, never hidden state.
func (h *CandidateHandler) List(c *gin.Context) {
	records, err := h.repo.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list candidates")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list candidates"})
		return
	}

	filtered := processor.Filter(records, criteriaFromQuery(c))
	sorted := processor.Sort(filtered, sortFromQuery(c), processor.CandidateValue)
	page, pagination := processor.Paginate(sorted, intQuery(c, "page", 1), intQuery(c, "perPage", 20))

	if page == nil {
		page = []model.CandidateRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"candidates": page,
		"pagination": pagination,
	})
}

// Export handles GET /candidates/export
// Applies the same filter and sort as List, then streams the whole view as CSV.
func (h *CandidateHandler) Export(c *gin.Context) {
	records, err := h.repo.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to export candidates")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export candidates"})
		return
	}

	filtered := processor.Filter(records, criteriaFromQuery(c))
	sorted := processor.Sort(filtered, sortFromQuery(c), processor.CandidateValue)

	rows := make([]map[string]string, len(sorted))
	for i, r := range sorted {
		rows[i] = map[string]string{
			"Candidate Name":            r.Name,
			"Email":                     r.Email,
			"Field of Study":            r.FieldOfStudy,
			"CGPA":                      strconv.FormatFloat(r.CGPA, 'f', -1, 64),
			"Skills":                    strings.Join(r.Skills, "; "),
			"Job Description Match (%)": strconv.Itoa(r.JobMatchPercent),
			"Strength":                  r.Strength,
			"Experience (Years)":        strconv.Itoa(r.ExperienceYears),
		}
	}

	csv := importer.ExportCSV(rows, exportHeaders)

	c.Header("Content-Disposition", `attachment; filename="candidates.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func criteriaFromQuery(c *gin.Context) model.FilterCriteria {
	criteria := model.FilterCriteria{
		SearchText:       c.Query("search"),
		FieldOfStudyIn:   c.QueryArray("fieldOfStudy"),
		MinCGPA:          floatQuery(c, "minCgpa", 0),
		ExperienceBucket: c.DefaultQuery("experience", model.ExperienceAny),
		JobMatchRange: model.JobMatchRange{
			Low:  intQuery(c, "jobMatchMin", 0),
			High: intQuery(c, "jobMatchMax", 100),
		},
	}
	return criteria
}

func sortFromQuery(c *gin.Context) model.SortSpec {
	return model.SortSpec{
		Key:       c.Query("sortBy"),
		Direction: c.DefaultQuery("sortDir", model.SortAsc),
	}
}

// floatQuery parses a float query parameter, coercing malformed values to
// the fallback rather than erroring
func floatQuery(c *gin.Context, key string, fallback float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
