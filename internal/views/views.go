// Package views holds the data shaping the UI consumes: which live
// matches to surface, the upcoming-fixtures window, and small display
// helpers for the classification table and squad listings.
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

// Followed competition. A live match belongs to it when the tournament
// name contains LeagueName or the tournament id matches LeagueID.
const (
	LeagueName = "LaLiga"
	LeagueID   = "UkksTK1s"
)

const (
	// How many world matches to surface when the followed league is idle.
	highlightLimit = 5

	// UpcomingDays is the fixtures window length.
	UpcomingDays = 21
)

// Status messages shown alongside the live list.
const (
	msgLeagueLive       = "Mostrando partidos de La Liga en vivo 🇪🇸"
	msgGlobalHighlights = "Sin actividad en La Liga. Mostrando destacados globales 🌍"
)

// PrioritizeLive selects which live matches to surface. Matches from the
// followed league win exclusively; with none of those, the first five
// world matches are shown instead. The returned message describes the
// applied filter; it is empty when there is nothing to show at all.
func PrioritizeLive(matches []models.Match) ([]models.Match, string) {
	league := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(m.TournamentName, LeagueName) || m.TournamentID == LeagueID {
			league = append(league, m)
		}
	}

	if len(league) > 0 {
		return league, msgLeagueLive
	}

	if len(matches) > highlightLimit {
		matches = matches[:highlightLimit]
	}
	if len(matches) == 0 {
		return []models.Match{}, ""
	}
	return matches, msgGlobalHighlights
}

// UpcomingWindow keeps fixtures starting between now and now+UpcomingDays,
// sorted ascending by start time. Matches without any parsable start time
// are discarded. Each kept match carries its resolved ProcessedDate.
func UpcomingWindow(matches []models.Match, now time.Time) []models.Match {
	limit := now.AddDate(0, 0, UpcomingDays)

	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		start, ok := m.StartTime()
		if !ok {
			continue
		}
		if start.Before(now) || start.After(limit) {
			continue
		}
		m.ProcessedDate = &start
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProcessedDate.Before(*out[j].ProcessedDate)
	})

	return out
}

// TopStandings returns the first n rows of the table.
func TopStandings(rows []models.Standing, n int) []models.Standing {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// IsTopRank reports whether a rank qualifies for the Champions places.
func IsTopRank(rank models.FlexInt) bool {
	return rank.Int() > 0 && rank.Int() <= 4
}

// IsRelegationRank reports whether a rank sits in the relegation zone.
func IsRelegationRank(rank models.FlexInt) bool {
	return rank.Int() > 17
}

// PlayerRole maps a free-text position to its display role class:
// gk, df, mf, fw, or empty for staff and unknowns.
func PlayerRole(position string) string {
	if position == "" {
		return ""
	}
	pos := strings.ToLower(position)

	switch {
	case strings.Contains(pos, "goalkeeper"):
		return "gk"
	case strings.Contains(pos, "back"), strings.Contains(pos, "defender"):
		return "df"
	case strings.Contains(pos, "midfield"):
		return "mf"
	case strings.Contains(pos, "wing"), strings.Contains(pos, "forward"), strings.Contains(pos, "striker"):
		return "fw"
	default:
		return ""
	}
}
