// Package flag implements capture points: a zone plus a bounded capture
// score, ownership, per-team discovery and the players currently inside.
//
// A Flag is owned by the single game-update goroutine; none of its methods
// are safe for concurrent use.
package flag

import (
	"log/slog"
	"math"

	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/model"
)

// MaxPoints is the capture score at which a team owns a flag.
// Team1 owns at +MaxPoints, Team2 at -MaxPoints.
const MaxPoints = 64.0

// NoIndex marks a flag that is not part of the active rotation.
const NoIndex = -1

// Flag is a capture point wrapping one zone.
//
// Ownership changes only at the ends of the score range: a team takes the
// flag at its ±MaxPoints and keeps it while the score drains, until the
// score reaches 0.
type Flag struct {
	zone  *zone.Zone
	index int

	points     float64
	owner      model.Team
	discovered [3]bool

	// occupants is the previous tick's snapshot, keyed by player.
	occupants map[model.PlayerID]model.Player
	players   [3][]model.Player
	cappers   [3]int

	listeners listeners
}

// New wraps z into a neutral flag outside any rotation.
func New(z *zone.Zone) *Flag {
	return &Flag{
		zone:      z,
		index:     NoIndex,
		occupants: make(map[model.PlayerID]model.Player),
	}
}

// ID returns the zone identifier of the flag.
func (f *Flag) ID() int { return f.zone.ID() }

// Name returns the display name.
func (f *Flag) Name() string { return f.zone.Name() }

// ShortName returns the short display name.
func (f *Flag) ShortName() string { return f.zone.ShortName() }

// Zone returns the wrapped zone.
func (f *Flag) Zone() *zone.Zone { return f.zone }

// Index returns the flag's position in the rotation, or NoIndex.
func (f *Flag) Index() int { return f.index }

// SetIndex places the flag in the rotation. NoIndex removes it.
func (f *Flag) SetIndex(i int) { f.index = i }

// Points returns the capture score in [-MaxPoints, MaxPoints].
func (f *Flag) Points() float64 { return f.points }

// Owner returns the owning team, TeamNone while neutral.
func (f *Flag) Owner() model.Team { return f.owner }

// Discovered reports whether team t has discovered the flag.
func (f *Flag) Discovered(t model.Team) bool {
	if !t.Valid() {
		return false
	}
	return f.discovered[t]
}

// Players returns the team's players inside the flag as of the last recompute.
// Callers must not modify the slice.
func (f *Flag) Players(t model.Team) []model.Player {
	if !t.Valid() {
		return nil
	}
	return f.players[t]
}

// Cappers returns how many of the team's players inside count towards capture.
func (f *Flag) Cappers(t model.Team) int {
	if !t.Valid() {
		return 0
	}
	return f.cappers[t]
}

// IsInside reports whether the player was inside at the last recompute.
func (f *Flag) IsInside(id model.PlayerID) bool {
	_, ok := f.occupants[id]
	return ok
}

// SetPoints sets the capture score, clamped to [-MaxPoints, MaxPoints].
// Reaching ±MaxPoints hands ownership to that side; reaching 0 neutralizes.
// No events are raised when nothing changes.
func (f *Flag) SetPoints(p float64) {
	if math.IsNaN(p) {
		slog.Error("ignoring NaN flag points", "flag", f.ID())
		return
	}
	p = max(-MaxPoints, min(MaxPoints, p))
	if p == f.points {
		return
	}

	old := f.points
	f.points = p
	f.listeners.emitPoints(f, old, p)

	switch {
	case p >= MaxPoints:
		f.setOwner(model.Team1)
	case p <= -MaxPoints:
		f.setOwner(model.Team2)
	case p == 0:
		f.setOwner(model.TeamNone)
	}
}

// SetOwner hands the flag to t outright, moving the score to match
// (+MaxPoints, -MaxPoints or 0 for TeamNone).
func (f *Flag) SetOwner(t model.Team) {
	if t != model.TeamNone && !t.Valid() {
		slog.Error("ignoring invalid flag owner", "flag", f.ID(), "team", t)
		return
	}
	target := t.Sign() * MaxPoints
	if f.points != target {
		old := f.points
		f.points = target
		f.listeners.emitPoints(f, old, target)
	}
	f.setOwner(t)
}

func (f *Flag) setOwner(t model.Team) {
	if t == f.owner {
		return
	}
	old := f.owner
	f.owner = t
	f.listeners.emitOwner(f, old, t)
	if t.Valid() {
		f.Discover(t)
	}
}

// Discover marks the flag as known to team t.
func (f *Flag) Discover(t model.Team) {
	if !t.Valid() || f.discovered[t] {
		return
	}
	f.discovered[t] = true
	f.listeners.emitDiscovered(f, t)
}

// Reset returns the flag to neutral for a new match: score 0, no owner,
// undiscovered, nobody inside. Score and owner changes raise events.
func (f *Flag) Reset() {
	f.SetOwner(model.TeamNone)
	f.discovered = [3]bool{}
	clear(f.occupants)
	f.players = [3][]model.Player{}
	f.cappers = [3]int{}
}

// Dispose drops every listener. The flag must not be used afterwards.
func (f *Flag) Dispose() {
	f.listeners.clear()
	f.index = NoIndex
}
