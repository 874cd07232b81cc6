package views_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/Santiii02/GoalStatsPro/internal/views"
	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

func TestPrioritizeLiveLeagueWins(t *testing.T) {
	matches := []models.Match{
		{EventID: "1", TournamentName: "Premier League"},
		{EventID: "2", TournamentID: "UkksTK1s", TournamentName: "Football Spain"},
		{EventID: "3", TournamentName: "LaLiga Santander"},
		{EventID: "4", TournamentName: "Serie A"},
	}

	got, msg := views.PrioritizeLive(matches)

	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	if got[0].EventID != "2" || got[1].EventID != "3" {
		t.Errorf("selected = %s,%s; want 2,3", got[0].EventID, got[1].EventID)
	}
	if msg == "" {
		t.Error("expected a league filter message")
	}
}

func TestPrioritizeLiveGlobalFallback(t *testing.T) {
	var matches []models.Match
	for i := 0; i < 8; i++ {
		matches = append(matches, models.Match{
			EventID:        strconv.Itoa(i),
			TournamentName: "Bundesliga",
		})
	}

	got, msg := views.PrioritizeLive(matches)

	if len(got) != 5 {
		t.Fatalf("matches = %d, want top 5 fallback", len(got))
	}
	for i, m := range got {
		if m.EventID != strconv.Itoa(i) {
			t.Errorf("order broken at %d: %s", i, m.EventID)
		}
	}
	if msg == "" {
		t.Error("expected a fallback message")
	}
}

func TestPrioritizeLiveEmptyInput(t *testing.T) {
	got, msg := views.PrioritizeLive(nil)

	if len(got) != 0 {
		t.Errorf("matches = %d, want 0", len(got))
	}
	if msg != "" {
		t.Errorf("message = %q, want empty", msg)
	}
}

func TestUpcomingWindowFiltersAndSorts(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	unix := func(t time.Time) models.FlexInt { return models.FlexInt(t.Unix()) }

	matches := []models.Match{
		{EventID: "past", EventStartTime: unix(now.Add(-2 * time.Hour))},
		{EventID: "in20d", EventStartTime: unix(now.AddDate(0, 0, 20))},
		{EventID: "tomorrow", EventStartTime: unix(now.AddDate(0, 0, 1))},
		{EventID: "beyond", EventStartTime: unix(now.AddDate(0, 0, 30))},
		{EventID: "iso", StartDateTimeUTC: now.Add(3 * time.Hour).Format(time.RFC3339)},
		{EventID: "dateless"},
	}

	got := views.UpcomingWindow(matches, now)

	want := []string{"iso", "tomorrow", "in20d"}
	if len(got) != len(want) {
		t.Fatalf("matches = %d, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.EventID != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, m.EventID, want[i])
		}
		if m.ProcessedDate == nil {
			t.Errorf("match %s missing processed date", m.EventID)
		}
	}
}

func TestUpcomingWindowISOWithoutZone(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	matches := []models.Match{
		{EventID: "plain-iso", StartDateTimeUTC: "2026-03-20T14:00:00"},
	}

	got := views.UpcomingWindow(matches, now)
	if len(got) != 1 {
		t.Fatalf("matches = %d, want 1", len(got))
	}
}

func TestTopStandings(t *testing.T) {
	rows := make([]models.Standing, 20)

	if got := views.TopStandings(rows, 5); len(got) != 5 {
		t.Errorf("top 5 = %d rows", len(got))
	}
	if got := views.TopStandings(rows, 0); len(got) != 20 {
		t.Errorf("top 0 = %d rows, want all", len(got))
	}
	if got := views.TopStandings(rows[:3], 5); len(got) != 3 {
		t.Errorf("top 5 of 3 = %d rows", len(got))
	}
}

func TestRankHelpers(t *testing.T) {
	if !views.IsTopRank(models.FlexInt(1)) || !views.IsTopRank(models.FlexInt(4)) {
		t.Error("ranks 1 and 4 should be top ranks")
	}
	if views.IsTopRank(models.FlexInt(5)) || views.IsTopRank(models.FlexInt(0)) {
		t.Error("ranks 5 and 0 should not be top ranks")
	}
	if views.IsRelegationRank(models.FlexInt(17)) {
		t.Error("rank 17 is safe")
	}
	if !views.IsRelegationRank(models.FlexInt(18)) {
		t.Error("rank 18 is relegation")
	}
}

func TestPlayerRole(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"Goalkeeper", "gk"},
		{"Right Back", "df"},
		{"Central Defender", "df"},
		{"Defensive Midfield", "mf"},
		{"Left Wing", "fw"},
		{"Centre Forward", "fw"},
		{"Striker", "fw"},
		{"Manager", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := views.PlayerRole(tt.position); got != tt.want {
			t.Errorf("PlayerRole(%q) = %q, want %q", tt.position, got, tt.want)
		}
	}
}
