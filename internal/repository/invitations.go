package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/assesshub-api/internal/model"
)

// effectiveStatus is the SQL twin of model.Invitation.EffectiveStatus: a
// sent/accepted row past its expiry reads as expired even though the stored
// status column hasn't been rewritten.
const effectiveStatus = `CASE WHEN status IN ('sent','accepted') AND expires_at <= now() THEN 'expired' ELSE status END`

const invitationColumns = `id, name, email, assessment_name, assessment_id, status, token,
	       sent_at, expires_at, created_at, updated_at`

type InvitationRepo struct {
	pool *pgxpool.Pool
}

func NewInvitationRepo(pool *pgxpool.Pool) *InvitationRepo {
	return &InvitationRepo{pool: pool}
}

// InvitationFilter holds query parameters for listing invitations
type InvitationFilter struct {
	Status       string // matched against effective status
	Search       string
	AssessmentID string
	Page         int
	PerPage      int
}

// List returns one page of invitations plus the total matching count.
// The status filter applies to effective status, so status=expired also
// selects rows still stored as sent/accepted whose expiry has passed.
func (r *InvitationRepo) List(ctx context.Context, filter InvitationFilter) ([]model.Invitation, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIdx := 1

	if filter.Status != "" {
		where += fmt.Sprintf(" AND %s = $%d", effectiveStatus, argIdx)
		args = append(args, model.NormalizeStatus(filter.Status))
		argIdx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.AssessmentID != "" {
		where += fmt.Sprintf(" AND assessment_id = $%d", argIdx)
		args = append(args, filter.AssessmentID)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM invitations"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting invitations: %w", err)
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := "SELECT " + invitationColumns + " FROM invitations" + where +
		fmt.Sprintf(" ORDER BY sent_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing invitations: %w", err)
	}
	defer rows.Close()

	var invitations []model.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, 0, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, total, nil
}

// FindByID returns a single invitation, nil when absent
func (r *InvitationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+invitationColumns+" FROM invitations WHERE id = $1", id)
	inv, err := scanInvitation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding invitation: %w", err)
	}
	return &inv, nil
}

// Create inserts a new invitation
func (r *InvitationRepo) Create(ctx context.Context, inv *model.Invitation) (*model.Invitation, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO invitations (name, email, assessment_name, assessment_id, status, token, sent_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+invitationColumns,
		inv.Name, inv.Email, inv.AssessmentName, inv.AssessmentID,
		inv.Status, inv.Token, inv.SentAt, inv.ExpiresAt,
	)
	created, err := scanInvitation(row)
	if err != nil {
		return nil, fmt.Errorf("creating invitation: %w", err)
	}
	return &created, nil
}

// UpdateStatus rewrites the stored status and bumps updated_at
func (r *InvitationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Invitation, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE invitations SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+invitationColumns, id, status)
	inv, err := scanInvitation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating invitation status: %w", err)
	}
	return &inv, nil
}

// Renew resets an invitation for resending: fresh token, new send time and
// expiry, status back to sent.
func (r *InvitationRepo) Renew(ctx context.Context, id uuid.UUID, token string, sentAt, expiresAt time.Time) (*model.Invitation, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE invitations
		SET token = $2, status = 'sent', sent_at = $3, expires_at = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+invitationColumns, id, token, sentAt, expiresAt)
	inv, err := scanInvitation(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("renewing invitation: %w", err)
	}
	return &inv, nil
}

// Touch bumps updated_at without changing anything else (reminder sent)
func (r *InvitationRepo) Touch(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE invitations SET updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touching invitation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountByEffectiveStatus aggregates invitation counts keyed by effective status
func (r *InvitationRepo) CountByEffectiveStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+effectiveStatus+" AS s, COUNT(*) FROM invitations GROUP BY s")
	if err != nil {
		return nil, fmt.Errorf("counting by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[status] = count
	}
	return counts, nil
}

// SentPerDay returns the daily sent counts for the trailing N days
func (r *InvitationRepo) SentPerDay(ctx context.Context, days int) ([]model.DayCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc('day', sent_at), 'YYYY-MM-DD') AS day, COUNT(*)
		FROM invitations
		WHERE sent_at >= now() - $1 * interval '1 day'
		GROUP BY day
		ORDER BY day
	`, days)
	if err != nil {
		return nil, fmt.Errorf("aggregating sent per day: %w", err)
	}
	defer rows.Close()

	var series []model.DayCount
	for rows.Next() {
		var dc model.DayCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scanning day count: %w", err)
		}
		series = append(series, dc)
	}
	return series, nil
}

func scanInvitation(row pgx.Row) (model.Invitation, error) {
	var inv model.Invitation
	err := row.Scan(
		&inv.ID, &inv.Name, &inv.Email, &inv.AssessmentName, &inv.AssessmentID,
		&inv.Status, &inv.Token, &inv.SentAt, &inv.ExpiresAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, err
}
