package sportdata

import (
	"sort"
	"strings"

	"github.com/Santiii02/GoalStatsPro/pkg/models"
)

// Position class weights for squad ordering. Unrecognized positions sink
// below the attack line.
const (
	weightGoalkeeper = 1
	weightDefense    = 2
	weightMidfield   = 3
	weightAttack     = 4
	weightUnknown    = 5
)

// positionWeight maps a free-text position to its class weight.
func positionWeight(position string) int {
	pos := strings.ToLower(position)

	switch {
	case strings.Contains(pos, "goalkeeper"):
		return weightGoalkeeper
	case strings.Contains(pos, "back"), strings.Contains(pos, "defender"):
		return weightDefense
	case strings.Contains(pos, "midfield"):
		return weightMidfield
	case strings.Contains(pos, "wing"), strings.Contains(pos, "forward"), strings.Contains(pos, "striker"):
		return weightAttack
	default:
		return weightUnknown
	}
}

// shapePlayers drops entries without a name or position and the manager,
// then orders the squad by position class. The sort must be stable: the
// provider lists positions within a class in pitch order (left back
// before right back) and that order carries through.
func shapePlayers(players []models.Player) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.Name == "" || p.Position == "" || p.Position == "Manager" {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return positionWeight(out[i].Position) < positionWeight(out[j].Position)
	})

	return out
}
