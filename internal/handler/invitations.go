package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/assesshub-api/internal/model"
	"github.com/yourusername/assesshub-api/internal/repository"
	"github.com/yourusername/assesshub-api/internal/service"
)

type InvitationHandler struct {
	svc *service.InvitationService
}

func NewInvitationHandler(svc *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{svc: svc}
}

// invitationView decorates an invitation with its effective status so
// clients never recompute expiry themselves.
type invitationView struct {
	model.Invitation
	EffectiveStatus string `json:"effectiveStatus"`
}

func toViews(invitations []model.Invitation, now time.Time) []invitationView {
	views := make([]invitationView, len(invitations))
	for i, inv := range invitations {
		views[i] = invitationView{Invitation: inv, EffectiveStatus: inv.EffectiveStatus(now)}
	}
	return views
}

// Create handles POST /invitations
// A single create is wrapped into a one-element bulk request.
func (h *InvitationHandler) Create(c *gin.Context) {
	var req service.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.svc.CreateBulk(c.Request.Context(), []service.CreateInvitationRequest{req})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create invitation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	c.JSON(http.StatusCreated, result.Invitations[0])
}

// CreateBulk handles POST /invitations/bulk
func (h *InvitationHandler) CreateBulk(c *gin.Context) {
	var req struct {
		Invitations []service.CreateInvitationRequest `json:"invitations" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.svc.CreateBulk(c.Request.Context(), req.Invitations)
	if err != nil {
		if errors.Is(err, service.ErrEmailRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("Failed to bulk create invitations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitations"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List handles GET /invitations
func (h *InvitationHandler) List(c *gin.Context) {
	filter := repository.InvitationFilter{
		Status:       c.Query("status"),
		Search:       c.Query("search"),
		AssessmentID: c.Query("assessmentId"),
		Page:         intQuery(c, "page", 1),
		PerPage:      intQuery(c, "perPage", 20),
	}

	invitations, pagination, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list invitations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": toViews(invitations, time.Now()),
		"pagination":  pagination,
	})
}

// Resend handles POST /invitations/:id/resend
func (h *InvitationHandler) Resend(c *gin.Context) {
	h.action(c, h.svc.Resend)
}

// Remind handles POST /invitations/:id/remind
func (h *InvitationHandler) Remind(c *gin.Context) {
	h.action(c, h.svc.Remind)
}

// Accept handles POST /invitations/:id/accept
func (h *InvitationHandler) Accept(c *gin.Context) {
	h.action(c, h.svc.Accept)
}

// Complete handles POST /invitations/:id/complete
func (h *InvitationHandler) Complete(c *gin.Context) {
	h.action(c, h.svc.Complete)
}

// Expire handles POST /invitations/:id/expire
func (h *InvitationHandler) Expire(c *gin.Context) {
	h.action(c, h.svc.Expire)
}

type invitationAction func(ctx context.Context, id uuid.UUID) (*model.Invitation, error)

func (h *InvitationHandler) action(c *gin.Context, fn invitationAction) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	inv, err := fn(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Msg("Invitation action failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invitation action failed"})
		}
		return
	}

	c.JSON(http.StatusOK, invitationView{Invitation: *inv, EffectiveStatus: inv.EffectiveStatus(time.Now())})
}

// intQuery parses an integer query parameter with a fallback
func intQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
