package sportdata_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Santiii02/GoalStatsPro/internal/cache"
	"github.com/Santiii02/GoalStatsPro/internal/retry"
	"github.com/Santiii02/GoalStatsPro/internal/sportdata"
	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

// mockFlash implements sportdata.FlashscoreAPI
type mockFlash struct {
	liveBody      []byte
	liveErr       error
	liveCalls     int
	standingsBody []byte
	fixturesBody  []byte
}

func (m *mockFlash) Live(ctx context.Context) ([]byte, error) {
	m.liveCalls++
	return m.liveBody, m.liveErr
}

func (m *mockFlash) Standings(ctx context.Context, season string) ([]byte, error) {
	return m.standingsBody, nil
}

func (m *mockFlash) Fixtures(ctx context.Context, season string) ([]byte, error) {
	return m.fixturesBody, nil
}

// mockSportsDB implements sportdata.SportsDBAPI. The mutex keeps the
// concurrent enrichment tests race-clean.
type mockSportsDB struct {
	mu          sync.Mutex
	searchBody  []byte
	searchErr   error
	searchCalls int
	searchNames []string
	playersBody []byte
}

func (m *mockSportsDB) SearchTeams(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	m.searchNames = append(m.searchNames, name)
	return m.searchBody, m.searchErr
}

func (m *mockSportsDB) LookupAllPlayers(ctx context.Context, teamID string) ([]byte, error) {
	return m.playersBody, nil
}

type testEnv struct {
	svc     *sportdata.Service
	flash   *mockFlash
	sdb     *mockSportsDB
	backend *cache.MemoryBackend
	now     *time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	flash := &mockFlash{}
	sdb := &mockSportsDB{}
	backend := cache.NewMemoryBackend()
	store := cache.New(backend)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store.SetClockForTest(func() time.Time { return now })

	policy := retry.NewPolicy(5, time.Second)
	policy.SetSleepForTest(func(time.Duration) {})

	svc := sportdata.New(flash, sdb, store, policy, "2025-2026", 5*time.Minute, 6*time.Hour)

	return &testEnv{svc: svc, flash: flash, sdb: sdb, backend: backend, now: &now}
}

func TestLiveMatchesCachesAndServes(t *testing.T) {
	env := newTestEnv(t)
	env.flash.liveBody = []byte(`[{"eventId":"1","homeName":"Betis","awayName":"Sevilla"}]`)
	ctx := context.Background()

	matches, outcome := env.svc.LiveMatchesResult(ctx)
	if outcome != sportdata.OutcomeFetched {
		t.Fatalf("first call outcome = %s, want fetched", outcome)
	}
	if len(matches) != 1 || matches[0].HomeName != "Betis" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	// Second call inside the TTL must not touch the network
	matches, outcome = env.svc.LiveMatchesResult(ctx)
	if outcome != sportdata.OutcomeCached {
		t.Errorf("second call outcome = %s, want cached", outcome)
	}
	if len(matches) != 1 {
		t.Errorf("cached matches = %d, want 1", len(matches))
	}
	if env.flash.liveCalls != 1 {
		t.Errorf("provider calls = %d, want 1", env.flash.liveCalls)
	}
}

func TestLiveMatchesRefetchesAfterTTL(t *testing.T) {
	env := newTestEnv(t)
	env.flash.liveBody = []byte(`[{"eventId":"1"}]`)
	ctx := context.Background()

	env.svc.LiveMatches(ctx)
	*env.now = env.now.Add(6 * time.Minute)
	env.svc.LiveMatches(ctx)

	if env.flash.liveCalls != 2 {
		t.Errorf("provider calls = %d, want 2 after TTL expiry", env.flash.liveCalls)
	}
}

func TestNormalizationBareListAndEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare list", `[{"eventId":"42","homeScore":2,"awayScore":"1"}]`},
		{"enveloped", `{"data":[{"eventId":"42","homeScore":2,"awayScore":"1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.flash.liveBody = []byte(tt.body)

			matches := env.svc.LiveMatches(context.Background())
			if len(matches) != 1 {
				t.Fatalf("matches = %d, want 1", len(matches))
			}
			if matches[0].EventID != "42" {
				t.Errorf("eventId = %q", matches[0].EventID)
			}
			if matches[0].HomeScore.String() != "2" || matches[0].AwayScore.String() != "1" {
				t.Errorf("scores = %q/%q, want 2/1", matches[0].HomeScore, matches[0].AwayScore)
			}
		})
	}
}

func TestNullResponseIsEmptyNotError(t *testing.T) {
	env := newTestEnv(t)
	env.flash.fixturesBody = []byte(`null`)

	matches, outcome := env.svc.FixturesResult(context.Background())
	if outcome != sportdata.OutcomeEmpty {
		t.Errorf("outcome = %s, want empty", outcome)
	}
	if matches == nil || len(matches) != 0 {
		t.Errorf("matches = %v, want empty list", matches)
	}
}

func TestEmptyResultNotCached(t *testing.T) {
	env := newTestEnv(t)
	env.flash.liveBody = []byte(`[]`)
	ctx := context.Background()

	env.svc.LiveMatches(ctx)
	env.svc.LiveMatches(ctx)

	if env.flash.liveCalls != 2 {
		t.Errorf("provider calls = %d, want 2 (empty result must not populate cache)", env.flash.liveCalls)
	}
	if env.backend.Len() != 0 {
		t.Errorf("cache entries = %d, want 0", env.backend.Len())
	}
}

func TestFailureCollapsesToEmptyList(t *testing.T) {
	env := newTestEnv(t)
	env.flash.liveErr = &retry.StatusError{StatusCode: 404}

	matches, outcome := env.svc.LiveMatchesResult(context.Background())
	if outcome != sportdata.OutcomeFailed {
		t.Errorf("outcome = %s, want failed", outcome)
	}
	if matches == nil || len(matches) != 0 {
		t.Errorf("matches = %v, want empty list", matches)
	}
	if env.flash.liveCalls != 1 {
		t.Errorf("provider calls = %d, want 1 (404 is never retried)", env.flash.liveCalls)
	}
}

func TestTransientFailureRetriedThenServed(t *testing.T) {
	// Fail twice with server errors, then recover
	failing := &sequenceFlash{
		responses: []flashResponse{
			{err: &retry.StatusError{StatusCode: 500}},
			{err: &retry.StatusError{StatusCode: 503}},
			{body: []byte(`[{"eventId":"1"}]`)},
		},
	}
	store := cache.New(cache.NewMemoryBackend())
	policy := retry.NewPolicy(5, time.Second)
	policy.SetSleepForTest(func(time.Duration) {})
	svc := sportdata.New(failing, &mockSportsDB{}, store, policy, "2025-2026", 5*time.Minute, 6*time.Hour)

	matches, outcome := svc.LiveMatchesResult(context.Background())
	if outcome != sportdata.OutcomeFetched {
		t.Errorf("outcome = %s, want fetched", outcome)
	}
	if len(matches) != 1 {
		t.Errorf("matches = %d, want 1", len(matches))
	}
	if failing.calls != 3 {
		t.Errorf("provider calls = %d, want 3", failing.calls)
	}
}

type flashResponse struct {
	body []byte
	err  error
}

// sequenceFlash implements sportdata.FlashscoreAPI with scripted responses
type sequenceFlash struct {
	responses []flashResponse
	calls     int
}

func (s *sequenceFlash) Live(ctx context.Context) ([]byte, error) {
	r := s.responses[s.calls]
	s.calls++
	return r.body, r.err
}

func (s *sequenceFlash) Standings(ctx context.Context, season string) ([]byte, error) {
	return nil, nil
}

func (s *sequenceFlash) Fixtures(ctx context.Context, season string) ([]byte, error) {
	return nil, nil
}

func TestCorruptCacheEntryIsRefetched(t *testing.T) {
	env := newTestEnv(t)
	env.flash.liveBody = []byte(`[{"eventId":"1"}]`)
	ctx := context.Background()

	if err := env.backend.Set(ctx, "goalstats_live", []byte("{{{garbage"), time.Minute); err != nil {
		t.Fatalf("seed: %v", err)
	}

	matches := env.svc.LiveMatches(ctx)
	if len(matches) != 1 {
		t.Errorf("matches = %d, want 1", len(matches))
	}
	if env.flash.liveCalls != 1 {
		t.Errorf("provider calls = %d, want 1", env.flash.liveCalls)
	}
}

func TestSearchTeamsFiltersSoccer(t *testing.T) {
	env := newTestEnv(t)
	env.sdb.searchBody = []byte(`{"teams":[
		{"strTeam":"Real Betis","strSport":"Soccer","strTeamBadge":"https://badge/betis.png"},
		{"strTeam":"Real Betis Baloncesto","strSport":"Basketball","strTeamBadge":"https://badge/bb.png"}
	]}`)

	teams := env.svc.SearchTeams(context.Background(), "Betis")
	if len(teams) != 1 {
		t.Fatalf("teams = %d, want 1", len(teams))
	}
	if teams[0].Name != "Real Betis" {
		t.Errorf("name = %q", teams[0].Name)
	}
}

func TestSearchTeamsUsesDerivedCacheKey(t *testing.T) {
	env := newTestEnv(t)
	env.sdb.searchBody = []byte(`{"teams":[{"strTeam":"Real Betis","strSport":"Soccer"}]}`)
	ctx := context.Background()

	env.svc.SearchTeams(ctx, "Betis")
	env.svc.SearchTeams(ctx, "Betis")
	env.svc.SearchTeams(ctx, "Sevilla")

	if env.sdb.searchCalls != 2 {
		t.Errorf("provider calls = %d, want 2 (one per distinct name)", env.sdb.searchCalls)
	}
}

func TestTeamPlayersFilterAndOrdering(t *testing.T) {
	env := newTestEnv(t)
	env.sdb.playersBody = []byte(`{"player":[
		{"strPlayer":"A","strPosition":"Right Midfield"},
		{"strPlayer":"B","strPosition":"Goalkeeper"},
		{"strPlayer":"C","strPosition":"Left Back"},
		{"strPlayer":"D","strPosition":"Manager"},
		{"strPlayer":"E","strPosition":"Striker"},
		{"strPlayer":"","strPosition":"Defender"},
		{"strPlayer":"F","strPosition":""}
	]}`)

	players := env.svc.TeamPlayers(context.Background(), "133739")

	want := []string{"Goalkeeper", "Left Back", "Right Midfield", "Striker"}
	if len(players) != len(want) {
		t.Fatalf("players = %d, want %d", len(players), len(want))
	}
	for i, p := range players {
		if p.Position != want[i] {
			t.Errorf("position[%d] = %q, want %q", i, p.Position, want[i])
		}
	}
}

func TestTeamPlayersStableWithinClass(t *testing.T) {
	env := newTestEnv(t)
	env.sdb.playersBody = []byte(`{"player":[
		{"strPlayer":"Striker One","strPosition":"Striker"},
		{"strPlayer":"LB","strPosition":"Left Back"},
		{"strPlayer":"CB","strPosition":"Centre Back"},
		{"strPlayer":"RB","strPosition":"Right Back"},
		{"strPlayer":"Winger","strPosition":"Left Wing"}
	]}`)

	players := env.svc.TeamPlayers(context.Background(), "1")

	wantNames := []string{"LB", "CB", "RB", "Striker One", "Winger"}
	if len(players) != len(wantNames) {
		t.Fatalf("players = %d, want %d", len(players), len(wantNames))
	}
	for i, p := range players {
		if p.Name != wantNames[i] {
			t.Errorf("player[%d] = %q, want %q", i, p.Name, wantNames[i])
		}
	}
}

func TestEnrichStandingsSequential(t *testing.T) {
	env := newTestEnv(t)
	env.sdb.searchBody = []byte(`{"teams":[{"strTeam":"X","strSport":"Soccer","strBadge":"https://badge/x.png"}]}`)

	rows := []models.Standing{
		{TeamName: "Real Betis"},
		{TeamName: "Sevilla"},
		{TeamName: ""},
	}

	env.svc.EnrichStandings(context.Background(), rows)

	if rows[0].TeamBadge != "https://badge/x.png" {
		t.Errorf("row 0 badge = %q", rows[0].TeamBadge)
	}
	if rows[1].TeamBadge != "https://badge/x.png" {
		t.Errorf("row 1 badge = %q", rows[1].TeamBadge)
	}
	if rows[2].TeamBadge != "" {
		t.Errorf("row 2 badge = %q, want unset", rows[2].TeamBadge)
	}
	if env.sdb.searchNames[0] != "Real Betis" || env.sdb.searchNames[1] != "Sevilla" {
		t.Errorf("search order = %v", env.sdb.searchNames)
	}
}

func TestEnrichStandingsBestEffortOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.sdb.searchErr = &retry.StatusError{StatusCode: 404}

	rows := []models.Standing{{TeamName: "Real Betis"}}
	env.svc.EnrichStandings(context.Background(), rows)

	if rows[0].TeamBadge != "" {
		t.Errorf("badge = %q, want unset on failed lookup", rows[0].TeamBadge)
	}
}

func TestEnrichStandingsConcurrent(t *testing.T) {
	env := newTestEnv(t)
	env.sdb.searchBody = []byte(`{"teams":[{"strTeam":"X","strSport":"Soccer","strTeamBadge":"https://badge/x.png"}]}`)

	rows := []models.Standing{
		{TeamName: "One"}, {TeamName: "Two"}, {TeamName: "Three"},
		{TeamName: "Four"}, {TeamName: "Five"},
	}

	env.svc.EnrichStandingsConcurrent(context.Background(), rows, 3)

	for i, row := range rows {
		if row.TeamBadge != "https://badge/x.png" {
			t.Errorf("row %d badge = %q", i, row.TeamBadge)
		}
	}
}
