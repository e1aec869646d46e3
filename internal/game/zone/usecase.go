package zone

import "fmt"

// UseCase tags what a zone is used for on the map.
type UseCase uint8

const (
	UseCaseOther UseCase = iota
	UseCaseFlag
	UseCaseTeam1Main
	UseCaseTeam2Main
	// UseCaseAntiMainCamp marks the zone around a main base where attackers are punished.
	UseCaseAntiMainCamp
	UseCaseLobby
	useCaseCount
)

var useCaseNames = [useCaseCount]string{
	UseCaseOther:        "other",
	UseCaseFlag:         "flag",
	UseCaseTeam1Main:    "team1_main",
	UseCaseTeam2Main:    "team2_main",
	UseCaseAntiMainCamp: "amc",
	UseCaseLobby:        "lobby",
}

// ParseUseCase parses the text form produced by UseCase.String.
func ParseUseCase(s string) (UseCase, error) {
	for i, name := range useCaseNames {
		if name == s {
			return UseCase(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown use case %q", ErrInvalidModel, s)
}

// Valid reports whether u is a known use case.
func (u UseCase) Valid() bool { return u < useCaseCount }

// IsMainBase reports whether u is one of the team main bases.
func (u UseCase) IsMainBase() bool { return u == UseCaseTeam1Main || u == UseCaseTeam2Main }

func (u UseCase) String() string {
	if !u.Valid() {
		return fmt.Sprintf("usecase(%d)", uint8(u))
	}
	return useCaseNames[u]
}

// MarshalText implements encoding.TextMarshaler (yaml and json).
func (u UseCase) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: unknown use case %d", ErrInvalidModel, uint8(u))
	}
	return []byte(useCaseNames[u]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler (yaml and json).
func (u *UseCase) UnmarshalText(text []byte) error {
	v, err := ParseUseCase(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
