package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/assesshub-api/internal/importer"
	"github.com/yourusername/assesshub-api/internal/model"
	"github.com/yourusername/assesshub-api/internal/repository"
	"github.com/yourusername/assesshub-api/internal/service"
)

const maxUploadBytes = 5 * 1024 * 1024

type ImportHandler struct {
	inviteSvc     *service.InvitationService
	candidateRepo *repository.CandidateRepo
}

func NewImportHandler(inviteSvc *service.InvitationService, candidateRepo *repository.CandidateRepo) *ImportHandler {
	return &ImportHandler{inviteSvc: inviteSvc, candidateRepo: candidateRepo}
}

// ImportInvitations handles POST /invitations/import
// Runs the upload through the import pipeline and returns every row with its
// per-field errors. With ?commit=true the valid rows become invitations.
func (h *ImportHandler) ImportInvitations(c *gin.Context) {
	rows, ok := h.runPipeline(c, importer.InvitationRules())
	if !ok {
		return
	}

	response := gin.H{
		"rows":      rows,
		"validRows": countValid(rows),
		"errorRows": len(rows) - countValid(rows),
	}

	if c.Query("commit") == "true" {
		reqs := make([]service.CreateInvitationRequest, 0, len(rows))
		for _, row := range rows {
			if !row.Valid() {
				continue
			}
			req := service.CreateInvitationRequest{
				Name:           row.Values["name"],
				Email:          row.Values["email"],
				AssessmentName: row.Values["assessmentName"],
				AssessmentID:   row.Values["assessmentId"],
			}
			// Only normalized dates commit; raw unparseable strings stay preview-only
			if t, err := time.Parse(time.RFC3339, row.Values["expiresAt"]); err == nil {
				req.ExpiresAt = t
			}
			reqs = append(reqs, req)
		}

		if len(reqs) > 0 {
			result, err := h.inviteSvc.CreateBulk(c.Request.Context(), reqs)
			if err != nil {
				log.Error().Err(err).Msg("Failed to create invitations from import")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitations"})
				return
			}
			response["created"] = result.Created
			response["invitations"] = result.Invitations
		} else {
			response["created"] = 0
		}
	}

	c.JSON(http.StatusOK, response)
}

// ImportCandidates handles POST /candidates/import
func (h *ImportHandler) ImportCandidates(c *gin.Context) {
	rows, ok := h.runPipeline(c, importer.ShortlistRules())
	if !ok {
		return
	}

	response := gin.H{
		"rows":      rows,
		"validRows": countValid(rows),
		"errorRows": len(rows) - countValid(rows),
	}

	if c.Query("commit") == "true" {
		records := make([]model.CandidateRecord, 0, len(rows))
		for _, row := range rows {
			if row.Valid() {
				records = append(records, candidateFromRow(row))
			}
		}

		created, err := h.candidateRepo.BulkCreate(c.Request.Context(), records)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create candidates from import")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create candidates"})
			return
		}
		response["created"] = created
	}

	c.JSON(http.StatusOK, response)
}

// runPipeline runs Stages A-C against the uploaded file. Parse and mapping
// failures are terminal and answered here; row-level errors are not.
func (h *ImportHandler) runPipeline(c *gin.Context, rules importer.RuleSet) ([]importer.ImportRow, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only CSV and XLSX files are supported"})
		return nil, false
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 5MB."})
		return nil, false
	}

	raw, headers, err := importer.Parse(file, ext)
	if err != nil {
		log.Warn().Err(err).Str("filename", header.Filename).Msg("Import parse failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	mapping := importer.AutoMap(headers, rules).Merge(mappingOverrides(c))
	if err := mapping.Resolve(rules); err != nil {
		var mappingErr *importer.MappingError
		if errors.As(err, &mappingErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":         err.Error(),
				"missingFields": mappingErr.Missing,
			})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	rows := importer.Materialize(raw, mapping, rules)

	log.Info().
		Int("rows", len(rows)).
		Int("valid", countValid(rows)).
		Str("filename", header.Filename).
		Msg("Import pipeline completed")

	return rows, true
}

// mappingOverrides reads the optional "mapping" form value: a JSON object of
// canonical field name to source header, taking precedence over auto-mapping
func mappingOverrides(c *gin.Context) importer.ColumnMapping {
	raw := c.PostForm("mapping")
	if raw == "" {
		return nil
	}

	var overrides importer.ColumnMapping
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed mapping overrides")
		return nil
	}
	return overrides
}

func countValid(rows []importer.ImportRow) int {
	n := 0
	for _, r := range rows {
		if r.Valid() {
			n++
		}
	}
	return n
}

// candidateFromRow materializes a CandidateRecord from validated import
// values. Malformed numerics coerce to 0; range invariants are clamped.
func candidateFromRow(row importer.ImportRow) model.CandidateRecord {
	cgpa, _ := strconv.ParseFloat(row.Values["cgpa"], 64)
	cgpa = clampFloat(cgpa, 0, 4)

	jobMatch, _ := strconv.Atoi(row.Values["jobMatch"])
	jobMatch = clampInt(jobMatch, 0, 100)

	experience, _ := strconv.Atoi(row.Values["experience"])
	if experience < 0 {
		experience = 0
	}

	return model.CandidateRecord{
		Name:            row.Values["name"],
		Email:           row.Values["email"],
		FieldOfStudy:    row.Values["fieldOfStudy"],
		CGPA:            cgpa,
		Skills:          splitSkills(row.Values["skills"]),
		JobMatchPercent: jobMatch,
		ExperienceYears: experience,
	}
}

func splitSkills(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	skills := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
