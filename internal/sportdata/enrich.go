package sportdata

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

// EnrichStandings fills each row's badge from a team search, one row at
// a time: the next lookup starts only after the previous one settles, so
// a rate-limited endpoint is never hammered. A lookup with no match
// leaves the badge unset; the join is best effort.
func (s *Service) EnrichStandings(ctx context.Context, rows []models.Standing) {
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return
		}
		s.enrichRow(ctx, &rows[i])
	}
}

// EnrichStandingsConcurrent runs the per-row lookups as independent
// tasks with a concurrency bound. Rows are disjoint, so the workers
// share nothing; relative completion order is irrelevant.
func (s *Service) EnrichStandingsConcurrent(ctx context.Context, rows []models.Standing, limit int) {
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range rows {
		row := &rows[i]
		g.Go(func() error {
			s.enrichRow(gctx, row)
			return nil
		})
	}

	// Workers never return errors; Wait only fences completion.
	_ = g.Wait()
}

// enrichRow resolves a badge for one standings row: first search match
// wins. SearchTeams already collapses failure into an empty list.
func (s *Service) enrichRow(ctx context.Context, row *models.Standing) {
	if row.TeamBadge != "" || row.TeamName == "" {
		return
	}

	teams := s.SearchTeams(ctx, row.TeamName)
	if len(teams) == 0 {
		return
	}
	if badge := teams[0].Badge(); badge != "" {
		row.TeamBadge = badge
	}
}
