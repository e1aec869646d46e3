package gamemode

import (
	"log/slog"

	"github.com/udisondev/frontline/internal/game/flag"
	"github.com/udisondev/frontline/internal/model"
)

// onOwnerChanged moves objectives after a capture or a neutralization.
//
// Team1 attacks forward, so its objective is the first flag it does not own;
// Team2 attacks backward, so its objective is the last flag it does not own.
// A capture therefore pushes the capturer past everything it holds, and a
// neutralization pulls the loser back to the flag it just lost.
func (g *Gamemode) onOwnerChanged(f *flag.Flag, old, next model.Team) {
	if g.phase != PhaseActive || f.Index() == flag.NoIndex {
		return
	}

	slog.Info("flag owner changed", "flag", f.ID(), "name", f.Name(), "from", old, "to", next)
	if g.tickets != nil {
		g.tickets.OwnershipChanged(f, old, next)
	}
	g.emitFlag(f)

	g.setObjective(model.Team1, g.firstNotOwnedBy(model.Team1))
	g.setObjective(model.Team2, g.lastNotOwnedBy(model.Team2))

	switch {
	case g.obj[model.Team1] >= len(g.rotation):
		g.declareWin(model.Team1)
	case g.obj[model.Team2] < 0:
		g.declareWin(model.Team2)
	}
}

func (g *Gamemode) firstNotOwnedBy(t model.Team) int {
	for i, f := range g.rotation {
		if f.Owner() != t {
			return i
		}
	}
	return len(g.rotation)
}

func (g *Gamemode) lastNotOwnedBy(t model.Team) int {
	for i := len(g.rotation) - 1; i >= 0; i-- {
		if g.rotation[i].Owner() != t {
			return i
		}
	}
	return -1
}

func (g *Gamemode) setObjective(t model.Team, i int) {
	old := g.obj[t]
	if old == i {
		return
	}
	g.obj[t] = i

	prev, next := g.flagAt(old), g.flagAt(i)
	if next != nil {
		next.Discover(t)
	}
	slog.Debug("objective changed", "team", t, "from", old, "to", i)

	if g.tickets != nil {
		g.tickets.ObjectiveChanged(t, prev, next)
	}
	for _, l := range g.listeners {
		l.ObjectiveChanged(t, old, i)
	}
	if prev != nil {
		g.emitFlag(prev)
	}
	if next != nil {
		g.emitFlag(next)
	}
}

// declareWin freezes the match. A missing ticket manager is not fatal:
// the match still finishes, the win just goes unreported.
func (g *Gamemode) declareWin(t model.Team) {
	g.winner = t
	g.setPhase(PhaseFinished)
	slog.Info("match won", "team", t, "tick", g.tick)

	if g.tickets == nil {
		slog.Warn("no ticket manager, win not declared", "team", t)
	} else {
		g.tickets.DeclareWin(t)
	}
	for _, l := range g.listeners {
		l.MatchWon(t)
	}
}

func (g *Gamemode) onPointsChanged(f *flag.Flag, _, _ float64) {
	if g.phase != PhaseActive || f.Index() == flag.NoIndex {
		return
	}
	g.emitFlag(f)
}

func (g *Gamemode) onPlayerEntered(f *flag.Flag, p model.Player) {
	for _, l := range g.listeners {
		l.PlayerEntered(f.ID(), p)
	}
}

func (g *Gamemode) onPlayerLeft(f *flag.Flag, p model.Player) {
	for _, l := range g.listeners {
		l.PlayerLeft(f.ID(), p)
	}
}

func (g *Gamemode) emitFlag(f *flag.Flag) {
	if len(g.listeners) == 0 {
		return
	}
	state := g.flagState(f)
	for _, l := range g.listeners {
		l.FlagUpdated(state)
	}
}
