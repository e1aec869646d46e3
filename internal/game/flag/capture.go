package flag

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/frontline/internal/model"
)

// Objective says for which teams a flag is currently the next target.
type Objective struct {
	Team1 bool
	Team2 bool
}

// Any reports whether the flag is an objective for at least one team.
func (o Objective) Any() bool { return o.Team1 || o.Team2 }

// Both reports whether both teams are attacking the flag at once.
func (o Objective) Both() bool { return o.Team1 && o.Team2 }

// Of reports whether the flag is an objective for team t.
func (o Objective) Of(t model.Team) bool {
	switch t {
	case model.Team1:
		return o.Team1
	case model.Team2:
		return o.Team2
	default:
		return false
	}
}

// TieBreaker resolves a capper tie, typically from squad cohesion.
// Returning TeamNone leaves the flag contested.
type TieBreaker func(f *Flag) model.Team

// Rules are the scoring tunables shared by every flag in a match.
type Rules struct {
	// RequiredDifference is the capper lead that wins a contested flag outright.
	RequiredDifference int
	// CaptureScale multiplies the logarithmic capture rate.
	CaptureScale float64
	// TieBreaker is optional; nil means ties stay contested.
	TieBreaker TieBreaker
	// Strict panics on invariant violations instead of logging them.
	Strict bool
}

// CaptureResult describes what one evaluation did.
type CaptureResult struct {
	Contested bool
	Winner    model.Team
	OldPoints float64
	NewPoints float64
	OldOwner  model.Team
	NewOwner  model.Team
}

// Captured reports whether the evaluation handed the flag to a team.
func (r CaptureResult) Captured() bool {
	return r.NewOwner != r.OldOwner && r.NewOwner.Valid()
}

// Neutralized reports whether the evaluation took the flag from its owner.
func (r CaptureResult) Neutralized() bool {
	return r.OldOwner.Valid() && r.NewOwner == model.TeamNone
}

// IsContested decides whether scoring is suspended on the flag and who, if
// anyone, is winning it. Flags that are nobody's objective never score.
//
// Counts are compared when both teams attack the flag, or when the flag is
// disputed: it is one team's objective and both teams have cappers on it,
// typically defenders of the owned flag against its attackers. Otherwise
// whichever team is present wins.
func (f *Flag) IsContested(obj Objective, rules Rules) (bool, model.Team) {
	if !obj.Any() {
		return false, model.TeamNone
	}

	t1, t2 := f.cappers[model.Team1], f.cappers[model.Team2]
	if !obj.Both() && (t1 == 0 || t2 == 0) {
		switch {
		case t1 > 0:
			return false, model.Team1
		case t2 > 0:
			return false, model.Team2
		default:
			return false, model.TeamNone
		}
	}

	switch {
	case t1 == 0 && t2 == 0:
		return false, model.TeamNone
	case t1 == t2:
		return f.breakTie(rules)
	case t2 == 0:
		return false, model.Team1
	case t1 == 0:
		return false, model.Team2
	case t1-t2 >= rules.RequiredDifference:
		return false, model.Team1
	case t2-t1 >= rules.RequiredDifference:
		return false, model.Team2
	default:
		return f.breakTie(rules)
	}
}

func (f *Flag) breakTie(rules Rules) (bool, model.Team) {
	if rules.TieBreaker == nil {
		return true, model.TeamNone
	}
	winner := rules.TieBreaker(f)
	if winner == model.TeamNone {
		return true, model.TeamNone
	}
	if !winner.Valid() || f.cappers[winner] == 0 {
		f.violation(rules, fmt.Sprintf("tie breaker picked %s with %d cappers", winner, f.Cappers(winner)))
		return false, model.TeamNone
	}
	return false, winner
}

// violation handles a broken runtime invariant: panic in strict mode,
// otherwise log and let the caller continue as uncontested with no winner.
func (f *Flag) violation(rules Rules, msg string) {
	if rules.Strict {
		panic(fmt.Sprintf("flag %d: %s", f.ID(), msg))
	}
	slog.Error("flag invariant violated", "flag", f.ID(), "detail", msg)
}

// CaptureDelta is the score change per evaluation for the given capper count:
// scale * log10(max(cappers, 1) + 1).
func CaptureDelta(scale float64, cappers int) float64 {
	return scale * math.Log10(float64(max(cappers, 1))+1)
}

// EvaluateCapture runs one scoring step. The winning team pushes the score
// towards its side by CaptureDelta; a step that would cross zero stops at
// exactly 0, so taking an enemy flag always passes through neutral.
func (f *Flag) EvaluateCapture(obj Objective, rules Rules) CaptureResult {
	res := CaptureResult{
		OldPoints: f.points,
		NewPoints: f.points,
		OldOwner:  f.owner,
		NewOwner:  f.owner,
	}

	res.Contested, res.Winner = f.IsContested(obj, rules)
	if res.Contested || res.Winner == model.TeamNone {
		return res
	}
	cappers := f.cappers[res.Winner]
	if cappers == 0 {
		f.violation(rules, fmt.Sprintf("winner %s has no cappers", res.Winner))
		res.Winner = model.TeamNone
		return res
	}

	next := f.points + res.Winner.Sign()*CaptureDelta(rules.CaptureScale, cappers)
	if (f.points > 0 && next < 0) || (f.points < 0 && next > 0) {
		next = 0
	}
	f.SetPoints(next)

	res.NewPoints = f.points
	res.NewOwner = f.owner
	return res
}
