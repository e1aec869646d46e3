package model

import (
	"github.com/udisondev/frontline/internal/geom"
)

// PlayerID is a stable per-player identifier (platform account id).
type PlayerID uint64

// Player is a per-tick snapshot of an online player.
// Value type, passed by value.
type Player struct {
	ID       PlayerID  `json:"id"`
	Name     string    `json:"name"`
	Team     Team      `json:"team"`
	Position geom.Vec3 `json:"position"`
	Alive    bool      `json:"alive"`
	// InVehicle is set for anyone seated in a vehicle; Passenger only for
	// seats that neither drive nor operate a weapon.
	InVehicle bool `json:"in_vehicle"`
	Passenger bool `json:"passenger"`
	SquadID   int  `json:"squad_id,omitempty"`
}

// CanCapture reports whether the player contributes to a flag's capture score.
// Vehicle passengers only count when the ruleset allows it.
func (p Player) CanCapture(allowPassengers bool) bool {
	if !p.Alive || !p.Team.Valid() {
		return false
	}
	if p.InVehicle && p.Passenger && !allowPassengers {
		return false
	}
	return true
}

// Roster supplies the live list of online players.
// The match loop only reads from it, once per tick.
type Roster interface {
	OnlinePlayers() []Player
}
