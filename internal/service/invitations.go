package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/assesshub-api/internal/model"
	"github.com/yourusername/assesshub-api/internal/processor"
	"github.com/yourusername/assesshub-api/internal/repository"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmailRequired      = errors.New("email is required")
)

const (
	// DefaultExpiry is how long invitations stay open by default (7 days)
	DefaultExpiry = 7 * 24 * time.Hour
	// TokenLength is the raw token size in bytes before base64 encoding
	TokenLength = 32

	DefaultAssessmentName = "Default Assessment"
	DefaultAssessmentID   = "default_assessment"
)

// CreateInvitationRequest is one entry of a bulk-create call. Single creates
// are wrapped into a one-element bulk request by the handler.
type CreateInvitationRequest struct {
	Name           string    `json:"name" binding:"required"`
	Email          string    `json:"email" binding:"required"`
	AssessmentName string    `json:"assessmentName"`
	AssessmentID   string    `json:"assessmentId"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

// BulkCreateResult mirrors the bulk-create response shape
type BulkCreateResult struct {
	Success     bool               `json:"success"`
	Created     int                `json:"created"`
	Invitations []model.Invitation `json:"invitations"`
}

// InvitationService owns invitation lifecycle rules: token generation,
// request defaulting, and monotonic status transitions.
type InvitationService struct {
	repo *repository.InvitationRepo
	now  func() time.Time
}

func NewInvitationService(repo *repository.InvitationRepo) *InvitationService {
	return &InvitationService{repo: repo, now: time.Now}
}

// CreateBulk creates one invitation per request entry. Missing assessment
// fields get the documented defaults; a zero expiry defaults to now+7d
// truncated to seconds.
func (s *InvitationService) CreateBulk(ctx context.Context, reqs []CreateInvitationRequest) (*BulkCreateResult, error) {
	now := s.now().UTC().Truncate(time.Second)

	result := &BulkCreateResult{Invitations: []model.Invitation{}}
	for _, req := range reqs {
		if strings.TrimSpace(req.Email) == "" {
			return nil, ErrEmailRequired
		}

		token, err := generateToken()
		if err != nil {
			return nil, err
		}

		inv := model.Invitation{
			Name:           strings.TrimSpace(req.Name),
			Email:          strings.TrimSpace(req.Email),
			AssessmentName: req.AssessmentName,
			AssessmentID:   req.AssessmentID,
			Status:         model.StatusSent,
			Token:          token,
			SentAt:         now,
			ExpiresAt:      req.ExpiresAt.UTC().Truncate(time.Second),
		}
		if inv.AssessmentName == "" {
			inv.AssessmentName = DefaultAssessmentName
		}
		if inv.AssessmentID == "" {
			inv.AssessmentID = DefaultAssessmentID
		}
		if req.ExpiresAt.IsZero() {
			inv.ExpiresAt = now.Add(DefaultExpiry)
		}

		created, err := s.repo.Create(ctx, &inv)
		if err != nil {
			return nil, err
		}
		result.Invitations = append(result.Invitations, *created)
		result.Created++
	}

	result.Success = true
	return result, nil
}

// List returns one page of invitations with pagination metadata
func (s *InvitationService) List(ctx context.Context, filter repository.InvitationFilter) ([]model.Invitation, model.Pagination, error) {
	invitations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	if invitations == nil {
		invitations = []model.Invitation{}
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = processor.DefaultPerPage
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	return invitations, model.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Resend issues a fresh token and expiry for an invitation. Completed
// invitations cannot be resent; expired and open ones can.
func (s *InvitationService) Resend(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	inv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == model.StatusCompleted {
		return nil, ErrInvalidTransition
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	renewed, err := s.repo.Renew(ctx, id, token, now, now.Add(DefaultExpiry))
	if err != nil {
		return nil, err
	}
	if renewed == nil {
		return nil, ErrInvitationNotFound
	}
	return renewed, nil
}

// Remind records a reminder against a still-open invitation. The actual
// email delivery belongs to an external notifier.
func (s *InvitationService) Remind(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	inv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	effective := inv.EffectiveStatus(s.now())
	if effective != model.StatusSent && effective != model.StatusAccepted {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.Touch(ctx, id); err != nil {
		return nil, err
	}
	return inv, nil
}

// Accept moves an invitation to accepted
func (s *InvitationService) Accept(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	return s.transition(ctx, id, model.StatusAccepted)
}

// Complete moves an invitation to completed
func (s *InvitationService) Complete(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	return s.transition(ctx, id, model.StatusCompleted)
}

// Expire forces an invitation to expired ahead of its expiry time
func (s *InvitationService) Expire(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	return s.transition(ctx, id, model.StatusExpired)
}

func (s *InvitationService) transition(ctx context.Context, id uuid.UUID, to string) (*model.Invitation, error) {
	inv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// Transitions are checked against effective status: a logically expired
	// invitation cannot be accepted or completed even if stored as sent.
	if !model.CanTransition(inv.EffectiveStatus(s.now()), to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, inv.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrInvitationNotFound
	}
	return updated, nil
}

func (s *InvitationService) find(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvitationNotFound
	}
	return inv, nil
}

func generateToken() (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}
