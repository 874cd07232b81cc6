package sportdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Santiii02/GoalStatsPro/internal/cache"
	"github.com/Santiii02/GoalStatsPro/internal/retry"
	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

// Cache keys. Live/standings/fixtures use fixed keys per season; search
// and player keys derive from the query.
const (
	keyLive = "goalstats_live"
)

func keyStandings(season string) string { return fmt.Sprintf("goalstats_standings_%s", season) }
func keyFixtures(season string) string  { return fmt.Sprintf("goalstats_fixtures_%s", season) }
func keySearch(name string) string      { return fmt.Sprintf("goalstats_search_%s", name) }
func keyPlayers(teamID string) string   { return fmt.Sprintf("goalstats_players_%s", teamID) }

// Outcome tells callers that care how a list was produced. The plain
// list-returning methods discard it: absence of data and failure both
// come back as an empty list.
type Outcome string

const (
	// OutcomeCached means the list came from a fresh cache entry.
	OutcomeCached Outcome = "cached"
	// OutcomeFetched means the list was fetched and cached.
	OutcomeFetched Outcome = "fetched"
	// OutcomeEmpty means the fetch succeeded but yielded no data;
	// empty results are never cached.
	OutcomeEmpty Outcome = "empty"
	// OutcomeFailed means the fetch failed after retries.
	OutcomeFailed Outcome = "failed"
)

// FlashscoreAPI is the football feed surface the service consumes.
type FlashscoreAPI interface {
	Live(ctx context.Context) ([]byte, error)
	Standings(ctx context.Context, season string) ([]byte, error)
	Fixtures(ctx context.Context, season string) ([]byte, error)
}

// SportsDBAPI is the team/player lookup surface the service consumes.
type SportsDBAPI interface {
	SearchTeams(ctx context.Context, name string) ([]byte, error)
	LookupAllPlayers(ctx context.Context, teamID string) ([]byte, error)
}

// Service is the typed data client over both providers. Every operation
// follows the same template: cache read, retried fetch on miss, shape
// normalization, write-through of non-empty results. Operations never
// fail observably; callers always get a list.
type Service struct {
	flash  FlashscoreAPI
	sdb    SportsDBAPI
	cache  *cache.Store
	policy *retry.Policy

	season    string
	ttlLive   time.Duration
	ttlStatic time.Duration
}

// New creates the sports data service.
func New(flash FlashscoreAPI, sdb SportsDBAPI, store *cache.Store, policy *retry.Policy, season string, ttlLive, ttlStatic time.Duration) *Service {
	return &Service{
		flash:     flash,
		sdb:       sdb,
		cache:     store,
		policy:    policy,
		season:    season,
		ttlLive:   ttlLive,
		ttlStatic: ttlStatic,
	}
}

// Season returns the configured season string.
func (s *Service) Season() string { return s.season }

// LiveMatches returns the worldwide live matches feed.
func (s *Service) LiveMatches(ctx context.Context) []models.Match {
	matches, _ := s.LiveMatchesResult(ctx)
	return matches
}

// LiveMatchesResult is LiveMatches plus the structured outcome.
func (s *Service) LiveMatchesResult(ctx context.Context) ([]models.Match, Outcome) {
	return getList[models.Match](ctx, s, keyLive, s.ttlLive, func(ctx context.Context) ([]byte, error) {
		return s.flash.Live(ctx)
	}, nil)
}

// Standings returns the competition table for the configured season.
func (s *Service) Standings(ctx context.Context) []models.Standing {
	rows, _ := s.StandingsResult(ctx)
	return rows
}

// StandingsResult is Standings plus the structured outcome.
func (s *Service) StandingsResult(ctx context.Context) ([]models.Standing, Outcome) {
	return getList[models.Standing](ctx, s, keyStandings(s.season), s.ttlStatic, func(ctx context.Context) ([]byte, error) {
		return s.flash.Standings(ctx, s.season)
	}, nil)
}

// Fixtures returns the competition calendar for the configured season.
func (s *Service) Fixtures(ctx context.Context) []models.Match {
	matches, _ := s.FixturesResult(ctx)
	return matches
}

// FixturesResult is Fixtures plus the structured outcome.
func (s *Service) FixturesResult(ctx context.Context) ([]models.Match, Outcome) {
	return getList[models.Match](ctx, s, keyFixtures(s.season), s.ttlStatic, func(ctx context.Context) ([]byte, error) {
		return s.flash.Fixtures(ctx, s.season)
	}, nil)
}

// SearchTeams returns teams matching name, restricted to football.
// Provider order is preserved.
func (s *Service) SearchTeams(ctx context.Context, name string) []models.Team {
	teams, _ := s.SearchTeamsResult(ctx, name)
	return teams
}

// SearchTeamsResult is SearchTeams plus the structured outcome.
func (s *Service) SearchTeamsResult(ctx context.Context, name string) ([]models.Team, Outcome) {
	return getList[models.Team](ctx, s, keySearch(name), s.ttlStatic, func(ctx context.Context) ([]byte, error) {
		return s.sdb.SearchTeams(ctx, name)
	}, filterSoccer)
}

// TeamPlayers returns the squad for a team id, without staff, ordered
// goalkeeper first and attack last.
func (s *Service) TeamPlayers(ctx context.Context, teamID string) []models.Player {
	players, _ := s.TeamPlayersResult(ctx, teamID)
	return players
}

// TeamPlayersResult is TeamPlayers plus the structured outcome.
func (s *Service) TeamPlayersResult(ctx context.Context, teamID string) ([]models.Player, Outcome) {
	return getList[models.Player](ctx, s, keyPlayers(teamID), s.ttlStatic, func(ctx context.Context) ([]byte, error) {
		return s.sdb.LookupAllPlayers(ctx, teamID)
	}, shapePlayers)
}

// getList is the shared operation template. shape, when set, is the
// operation's own filter/sort step; its output is what gets cached, so
// a later cache hit returns the finished list directly.
func getList[T any](ctx context.Context, s *Service, key string, ttl time.Duration, fetch func(context.Context) ([]byte, error), shape func([]T) []T) ([]T, Outcome) {
	if data, ok := s.cache.GetFresh(ctx, key); ok {
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, OutcomeCached
		}
		// An entry that parses as an envelope but not as the list type
		// is as good as corrupt; fall through to the network.
	}

	var body []byte
	err := s.policy.Do(ctx, func() error {
		b, err := fetch(ctx)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		log.Printf("[sportdata] fetch %s failed: %v", key, err)
		return []T{}, OutcomeFailed
	}

	var out []T
	if err := json.Unmarshal(unwrapList(body), &out); err != nil {
		log.Printf("[sportdata] decode %s failed: %v", key, err)
		return []T{}, OutcomeFailed
	}

	if shape != nil {
		out = shape(out)
	}

	// Empty results are returned but not cached, so a transient
	// "no data yet" state does not stick for a whole TTL.
	if len(out) == 0 {
		return []T{}, OutcomeEmpty
	}

	if data, err := json.Marshal(out); err == nil {
		if err := s.cache.Put(ctx, key, data, ttl); err != nil {
			log.Printf("[sportdata] cache write %s failed: %v", key, err)
		}
	}

	return out, OutcomeFetched
}

// filterSoccer keeps only records from the football domain; the search
// endpoint matches across every sport TheSportsDB covers.
func filterSoccer(teams []models.Team) []models.Team {
	out := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.Sport == "Soccer" {
			out = append(out, t)
		}
	}
	return out
}
