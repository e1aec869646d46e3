package gamemode

import (
	"github.com/udisondev/frontline/internal/game/flag"
	"github.com/udisondev/frontline/internal/model"
)

// TicketManager is the win-condition collaborator. It is told about every
// ownership and objective change and decides what a win means.
type TicketManager interface {
	OwnershipChanged(f *flag.Flag, old, next model.Team)
	// ObjectiveChanged reports a team's new objective; either flag may be nil.
	ObjectiveChanged(team model.Team, old, next *flag.Flag)
	DeclareWin(team model.Team)
}

// Listener observes the match for display. Calls happen on the tick
// goroutine and must not block.
type Listener interface {
	PhaseChanged(old, next Phase)
	FlagUpdated(state FlagState)
	ObjectiveChanged(team model.Team, oldIndex, newIndex int)
	PlayerEntered(flagID int, p model.Player)
	PlayerLeft(flagID int, p model.Player)
	MatchWon(team model.Team)
}

// NopListener ignores everything. Embed it to implement part of Listener.
type NopListener struct{}

func (NopListener) PhaseChanged(Phase, Phase)             {}
func (NopListener) FlagUpdated(FlagState)                 {}
func (NopListener) ObjectiveChanged(model.Team, int, int) {}
func (NopListener) PlayerEntered(int, model.Player)       {}
func (NopListener) PlayerLeft(int, model.Player)          {}
func (NopListener) MatchWon(model.Team)                   {}

var _ Listener = NopListener{}
