package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/assesshub-api/internal/model"
)

type CandidateRepo struct {
	pool *pgxpool.Pool
}

func NewCandidateRepo(pool *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{pool: pool}
}

// List returns the full candidate pool, insertion order. Filtering, sorting
// and pagination happen in-process through the processor engines so every
// screen shares one implementation.
func (r *CandidateRepo) List(ctx context.Context) ([]model.CandidateRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, field_of_study, cgpa, skills,
		       job_match_percent, strength, experience_years, created_at
		FROM candidates
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.CandidateRecord
	for rows.Next() {
		var c model.CandidateRecord
		err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.FieldOfStudy, &c.CGPA,
			&c.Skills, &c.JobMatchPercent, &c.Strength, &c.ExperienceYears,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// BulkCreate inserts candidates parsed from an import, returning the count
func (r *CandidateRepo) BulkCreate(ctx context.Context, candidates []model.CandidateRecord) (int, error) {
	var created int
	for _, c := range candidates {
		result, err := r.pool.Exec(ctx, `
			INSERT INTO candidates (name, email, phone, field_of_study, cgpa, skills,
			                        job_match_percent, strength, experience_years)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (email) DO NOTHING
		`, c.Name, c.Email, c.Phone, c.FieldOfStudy, c.CGPA, c.Skills,
			c.JobMatchPercent, c.Strength, c.ExperienceYears)
		if err != nil {
			return created, fmt.Errorf("creating candidate: %w", err)
		}
		created += int(result.RowsAffected())
	}
	return created, nil
}
