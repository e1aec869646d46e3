package gamemode

import (
	"github.com/udisondev/frontline/internal/game/flag"
	"github.com/udisondev/frontline/internal/model"
)

// FlagState is a read-only copy of one rotation flag.
type FlagState struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	ShortName string     `json:"short_name"`
	Index     int        `json:"index"`
	Points    float64    `json:"points"`
	Owner     model.Team `json:"owner"`
	Contested bool       `json:"contested"`
	Team1     TeamState  `json:"team1"`
	Team2     TeamState  `json:"team2"`
}

// TeamState is one team's view of a flag.
type TeamState struct {
	Cappers    int  `json:"cappers"`
	Discovered bool `json:"discovered"`
	Objective  bool `json:"objective"`
}

// Snapshot is an immutable view of the match, safe to share between goroutines.
type Snapshot struct {
	Tick       uint64      `json:"tick"`
	Phase      Phase       `json:"phase"`
	Winner     model.Team  `json:"winner"`
	Objective1 int         `json:"objective1"`
	Objective2 int         `json:"objective2"`
	Flags      []FlagState `json:"flags"`
}

// Flag returns the state of a flag by id.
func (s *Snapshot) Flag(id int) (FlagState, bool) {
	for _, f := range s.Flags {
		if f.ID == id {
			return f, true
		}
	}
	return FlagState{}, false
}

func (g *Gamemode) flagState(f *flag.Flag) FlagState {
	obj := g.objectiveOf(f)
	return FlagState{
		ID:        f.ID(),
		Name:      f.Name(),
		ShortName: f.ShortName(),
		Index:     f.Index(),
		Points:    f.Points(),
		Owner:     f.Owner(),
		Contested: g.contested[f.ID()],
		Team1: TeamState{
			Cappers:    f.Cappers(model.Team1),
			Discovered: f.Discovered(model.Team1),
			Objective:  obj.Team1,
		},
		Team2: TeamState{
			Cappers:    f.Cappers(model.Team2),
			Discovered: f.Discovered(model.Team2),
			Objective:  obj.Team2,
		},
	}
}

// publish stores a fresh snapshot for other goroutines.
func (g *Gamemode) publish() {
	s := &Snapshot{
		Tick:       g.tick,
		Phase:      g.phase,
		Winner:     g.winner,
		Objective1: g.obj[model.Team1],
		Objective2: g.obj[model.Team2],
		Flags:      make([]FlagState, len(g.rotation)),
	}
	for i, f := range g.rotation {
		s.Flags[i] = g.flagState(f)
	}
	g.snapshot.Store(s)
}
