package model

import "fmt"

// Team identifies a side in a match. TeamNone is used for neutral ownership.
type Team uint8

const (
	TeamNone Team = 0
	Team1    Team = 1
	Team2    Team = 2
)

// Valid reports whether t is one of the two playing teams.
func (t Team) Valid() bool { return t == Team1 || t == Team2 }

// Other returns the opposing team, or TeamNone for TeamNone.
func (t Team) Other() Team {
	switch t {
	case Team1:
		return Team2
	case Team2:
		return Team1
	default:
		return TeamNone
	}
}

// Sign is the direction team t pushes a flag score: +1 for Team1, -1 for Team2.
func (t Team) Sign() float64 {
	switch t {
	case Team1:
		return 1
	case Team2:
		return -1
	default:
		return 0
	}
}

func (t Team) String() string {
	switch t {
	case TeamNone:
		return "none"
	case Team1:
		return "team1"
	case Team2:
		return "team2"
	default:
		return fmt.Sprintf("team(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Team) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Team) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*t = TeamNone
	case "team1", "1":
		*t = Team1
	case "team2", "2":
		*t = Team2
	default:
		return fmt.Errorf("unknown team %q", text)
	}
	return nil
}
