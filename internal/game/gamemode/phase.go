package gamemode

// Phase is the match state.
type Phase uint8

const (
	PhasePaused Phase = iota
	PhaseStaging
	PhaseActive
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePaused:
		return "paused"
	case PhaseStaging:
		return "staging"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
