package flag

import (
	"cmp"
	"slices"

	"github.com/udisondev/frontline/internal/model"
)

// Occupancy is the difference between two consecutive occupant snapshots.
type Occupancy struct {
	Entered []model.Player
	Left    []model.Player
}

// Empty reports whether nobody entered or left.
func (o Occupancy) Empty() bool { return len(o.Entered) == 0 && len(o.Left) == 0 }

// RecomputeOccupants rebuilds the set of living players inside the flag from
// scratch, diffs it against the previous snapshot and raises enter/leave
// events. Vehicle passengers are inside but only count as cappers when
// allowPassengers is set. O(len(players)).
func (f *Flag) RecomputeOccupants(players []model.Player, allowPassengers bool) Occupancy {
	prev := f.occupants
	next := make(map[model.PlayerID]model.Player, len(prev))

	var (
		teams   [3][]model.Player
		cappers [3]int
		occ     Occupancy
	)
	for _, p := range players {
		if !p.Alive || !p.Team.Valid() {
			continue
		}
		if !f.zone.Contains(p.Position) {
			continue
		}
		next[p.ID] = p
		teams[p.Team] = append(teams[p.Team], p)
		if p.CanCapture(allowPassengers) {
			cappers[p.Team]++
		}
		if _, was := prev[p.ID]; !was {
			occ.Entered = append(occ.Entered, p)
		}
	}
	for id, p := range prev {
		if _, still := next[id]; !still {
			occ.Left = append(occ.Left, p)
		}
	}
	slices.SortFunc(occ.Left, func(a, b model.Player) int { return cmp.Compare(a.ID, b.ID) })

	f.occupants = next
	f.players = teams
	f.cappers = cappers

	f.listeners.emitPlayers(f, f.listeners.left, occ.Left)
	f.listeners.emitPlayers(f, f.listeners.entered, occ.Entered)
	return occ
}
