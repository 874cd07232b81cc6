package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Santiii02/GoalStatsPro/internal/sportdata"
	"github.com/Santiii02/GoalStatsPro/internal/views"
	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

// Allowed concurrent badge lookups per standings request.
const badgeLookupLimit = 5

// outcomeHeader exposes how a list was produced (cached/fetched/empty/
// failed) without breaking the list-only body contract.
const outcomeHeader = "X-Data-Outcome"

// DataService is the sports data surface the handlers consume.
type DataService interface {
	LiveMatchesResult(ctx context.Context) ([]models.Match, sportdata.Outcome)
	StandingsResult(ctx context.Context) ([]models.Standing, sportdata.Outcome)
	FixturesResult(ctx context.Context) ([]models.Match, sportdata.Outcome)
	SearchTeamsResult(ctx context.Context, name string) ([]models.Team, sportdata.Outcome)
	TeamPlayersResult(ctx context.Context, teamID string) ([]models.Player, sportdata.Outcome)
	EnrichStandingsConcurrent(ctx context.Context, rows []models.Standing, limit int)
}

// Handler contains dependencies for the HTTP handlers.
type Handler struct {
	data DataService
}

// NewHandler creates a new handler with dependencies.
func NewHandler(data DataService) *Handler {
	return &Handler{
		data: data,
	}
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "goalstats",
	})
}

// GetLiveMatches returns the live matches to surface, league first.
// GET /api/v1/matches/live
func (h *Handler) GetLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	matches, outcome := h.data.LiveMatchesResult(ctx)
	shown, message := views.PrioritizeLive(matches)

	w.Header().Set(outcomeHeader, string(outcome))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches": shown,
		"message": message,
		"count":   len(shown),
	})
}

// GetUpcomingMatches returns fixtures inside the upcoming window,
// soonest first.
// GET /api/v1/matches/upcoming
func (h *Handler) GetUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	fixtures, outcome := h.data.FixturesResult(ctx)
	upcoming := views.UpcomingWindow(fixtures, time.Now())

	w.Header().Set(outcomeHeader, string(outcome))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches":    upcoming,
		"count":      len(upcoming),
		"windowDays": views.UpcomingDays,
	})
}

// GetStandings returns the classification table.
// Query params: top (first N rows), badges (true enriches team badges)
// GET /api/v1/standings
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	rows, outcome := h.data.StandingsResult(ctx)
	rows = views.TopStandings(rows, parseIntParam(r, "top", 0))

	if r.URL.Query().Get("badges") == "true" {
		h.data.EnrichStandingsConcurrent(ctx, rows, badgeLookupLimit)
	}

	w.Header().Set(outcomeHeader, string(outcome))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"standings": rows,
		"count":     len(rows),
	})
}

// SearchTeams returns football teams matching the name query.
// GET /api/v1/teams/search?name={name}
func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	teams, outcome := h.data.SearchTeamsResult(ctx, name)

	w.Header().Set(outcomeHeader, string(outcome))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// playerView is a player plus its display role class.
type playerView struct {
	models.Player
	Role string `json:"role,omitempty"`
}

// GetTeamPlayers returns the squad for a team, goalkeeper first.
// GET /api/v1/teams/{teamID}/players
func (h *Handler) GetTeamPlayers(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if teamID == "" {
		respondError(w, http.StatusBadRequest, "teamID is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	players, outcome := h.data.TeamPlayersResult(ctx, teamID)

	out := make([]playerView, 0, len(players))
	for _, p := range players {
		out = append(out, playerView{Player: p, Role: views.PlayerRole(p.Position)})
	}

	w.Header().Set(outcomeHeader, string(outcome))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": out,
		"count":   len(out),
	})
}

// GetTeamDetail returns the best team match for a name plus its squad.
// The first search result wins; a squad lookup only happens when the
// team record carries an id.
// GET /api/v1/teams/detail/{name}
func (h *Handler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	teams, outcome := h.data.SearchTeamsResult(ctx, name)
	w.Header().Set(outcomeHeader, string(outcome))

	if len(teams) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"team":    nil,
			"players": []playerView{},
		})
		return
	}

	team := teams[0]
	players := []models.Player{}
	if team.Key() != "" {
		players, _ = h.data.TeamPlayersResult(ctx, team.Key())
	}

	out := make([]playerView, 0, len(players))
	for _, p := range players {
		out = append(out, playerView{Player: p, Role: views.PlayerRole(p.Position)})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":    team,
		"players": out,
	})
}
