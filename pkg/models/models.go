package models

import "time"

// Match represents a football match from the flashscore feed.
// Exactly one of EventStartTime (unix seconds) or StartDateTimeUTC (ISO-8601)
// is populated per record; StartTime resolves whichever is present.
type Match struct {
	EventID        string `json:"eventId,omitempty"`
	TournamentID   string `json:"tournamentId,omitempty"`
	TournamentName string `json:"tournamentName,omitempty"`
	Round          string `json:"round,omitempty"`

	StartDateTimeUTC string  `json:"startDateTimeUtc,omitempty"`
	EventStartTime   FlexInt `json:"eventStartTime,omitempty"`

	// ProcessedDate is computed once from the raw start time fields and
	// carried on the record for filtering, sorting and display.
	ProcessedDate *time.Time `json:"processedDate,omitempty"`

	HomeName  string     `json:"homeName,omitempty"`
	HomeLogo  string     `json:"homeLogo,omitempty"`
	HomeScore FlexString `json:"homeScore,omitempty"`

	AwayName  string     `json:"awayName,omitempty"`
	AwayLogo  string     `json:"awayLogo,omitempty"`
	AwayScore FlexString `json:"awayScore,omitempty"`

	GameTime    string `json:"gameTime,omitempty"`
	EventStatus string `json:"eventStatus,omitempty"`
}

// StartTime resolves the match start from the populated raw field.
// The unix timestamp wins when both are present; records with neither
// (or an unparsable ISO string) report ok=false and should be discarded.
func (m *Match) StartTime() (time.Time, bool) {
	if m.EventStartTime != 0 {
		return time.Unix(m.EventStartTime.Int(), 0), true
	}
	if m.StartDateTimeUTC != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, m.StartDateTimeUTC); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Standing represents one row of a league classification table.
// Numeric fields arrive as string or number depending on the provider mood;
// FlexInt coerces them at decode time.
type Standing struct {
	Rank     FlexInt `json:"rank"`
	TeamID   string  `json:"teamId,omitempty"`
	TeamName string  `json:"teamName"`
	Points   FlexInt `json:"points"`
	Matches  FlexInt `json:"matches"`
	GoalDiff FlexInt `json:"goalDiff"`
	Goals    string  `json:"goals,omitempty"`

	// Badge and logo are best-effort enrichment from a secondary team
	// search; either may stay empty when no match is found.
	TeamBadge string `json:"teamBadge,omitempty"`
	TeamLogo  string `json:"teamLogo,omitempty"`
}

// Team represents a team record from TheSportsDB.
// The provider exposes the id and badge under two key names each,
// depending on the endpoint version; Key and Badge pick the populated one.
type Team struct {
	IDTeam        string `json:"idTeam,omitempty"`
	ID            string `json:"id,omitempty"`
	Name          string `json:"strTeam"`
	TeamBadge     string `json:"strTeamBadge,omitempty"`
	BadgeAlt      string `json:"strBadge,omitempty"`
	League        string `json:"strLeague,omitempty"`
	Stadium       string `json:"strStadium,omitempty"`
	DescriptionES string `json:"strDescriptionES,omitempty"`
	FormedYear    string `json:"intFormedYear,omitempty"`
	Sport         string `json:"strSport,omitempty"`
}

// Key returns the team id regardless of which provider key carried it.
func (t *Team) Key() string {
	if t.IDTeam != "" {
		return t.IDTeam
	}
	return t.ID
}

// Badge returns the badge URL regardless of which provider key carried it.
func (t *Team) Badge() string {
	if t.TeamBadge != "" {
		return t.TeamBadge
	}
	return t.BadgeAlt
}

// Player represents a squad member from TheSportsDB player lookup.
type Player struct {
	IDPlayer    string `json:"idPlayer,omitempty"`
	IDTeam      string `json:"idTeam,omitempty"`
	Name        string `json:"strPlayer"`
	Position    string `json:"strPosition,omitempty"`
	Number      string `json:"strNumber,omitempty"`
	Nationality string `json:"strNationality,omitempty"`
	Thumb       string `json:"strThumb,omitempty"`
	Cutout      string `json:"strCutout,omitempty"`
}
