package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yourusername/assesshub-api/internal/cache"
	"github.com/yourusername/assesshub-api/internal/model"
	"github.com/yourusername/assesshub-api/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
	sentSeriesDays    = 30
)

// DashboardService aggregates invitation analytics. The summary is memoized
// in Redis for a minute when a cache is configured; cache failures degrade
// to a direct query rather than failing the request.
type DashboardService struct {
	repo  *repository.InvitationRepo
	cache *cache.Cache
}

func NewDashboardService(repo *repository.InvitationRepo, c *cache.Cache) *DashboardService {
	return &DashboardService{repo: repo, cache: c}
}

// Summary returns counts per effective status plus the trailing 30-day
// sent-per-day series.
func (s *DashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	var cached model.DashboardSummary
	hit, err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("Dashboard cache read failed, querying directly")
	}
	if hit {
		return &cached, nil
	}

	counts, err := s.repo.CountByEffectiveStatus(ctx)
	if err != nil {
		return nil, err
	}

	series, err := s.repo.SentPerDay(ctx, sentSeriesDays)
	if err != nil {
		return nil, err
	}
	if series == nil {
		series = []model.DayCount{}
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	summary := &model.DashboardSummary{
		Total:        total,
		StatusCounts: counts,
		SentPerDay:   series,
		GeneratedAt:  time.Now().UTC(),
	}

	if err := s.cache.SetJSON(ctx, dashboardCacheKey, summary, dashboardCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Dashboard cache write failed")
	}

	return summary, nil
}
