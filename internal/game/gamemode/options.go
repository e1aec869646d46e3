package gamemode

import (
	"math/rand/v2"

	"github.com/udisondev/frontline/internal/game/flag"
)

// Option configures a Gamemode.
type Option func(*Gamemode)

// WithTicketManager sets the win-condition collaborator.
func WithTicketManager(tm TicketManager) Option {
	return func(g *Gamemode) { g.tickets = tm }
}

// WithTieBreaker sets the contest tie-break hook.
func WithTieBreaker(tb flag.TieBreaker) Option {
	return func(g *Gamemode) { g.tieBreaker = tb }
}

// WithRand sets the source used for rotation building.
func WithRand(r *rand.Rand) Option {
	return func(g *Gamemode) { g.rng = r }
}

// WithListener adds a match observer.
func WithListener(l Listener) Option {
	return func(g *Gamemode) { g.listeners = append(g.listeners, l) }
}
