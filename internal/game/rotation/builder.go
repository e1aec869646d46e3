// Package rotation picks the ordered chain of flags a match is fought over.
//
// Two walkers start at the main bases and take turns stepping to a weighted
// random neighbour nobody has visited yet, until team 1's frontier touches
// team 2's. The result is team 1's walk followed by team 2's walk reversed,
// so index 0 is next to team 1's main and the last index next to team 2's.
package rotation

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/frontline/internal/game/flag"
)

var (
	// ErrRotationUnsatisfiable means no rotation of legal length was found
	// within the attempt budget.
	ErrRotationUnsatisfiable = errors.New("rotation unsatisfiable")
	// ErrNoMainBase means a main-base pseudo-node has no outgoing links.
	ErrNoMainBase = errors.New("main base has no adjacent flags")
)

// DefaultMaxAttempts bounds re-rolls when Builder.MaxAttempts is zero.
const DefaultMaxAttempts = 64

// MinRotationFlags is the shortest rotation a match can be played on.
// Builder.MinFlags below it is raised to it.
const MinRotationFlags = 4

// Builder builds rotations. The zero value is not usable: MaxFlags must be
// at least MinRotationFlags.
type Builder struct {
	MinFlags    int
	MaxFlags    int
	MaxAttempts int
	// Rand drives the weighted choices. Nil means a randomly seeded source.
	Rand *rand.Rand
}

type walker struct {
	graph *Graph
	at    int
	path  []*flag.Flag
}

// Build returns the ordered rotation. team1 is the team-1 direction graph,
// team2 the team-2 direction graph (normally team1.Transpose()). Flags the
// walkers never reach stay out of the rotation.
func (b *Builder) Build(flags []*flag.Flag, team1, team2 *Graph) ([]*flag.Flag, error) {
	minFlags := max(b.MinFlags, MinRotationFlags)
	if b.MaxFlags < minFlags {
		return nil, fmt.Errorf("invalid rotation bounds [%d, %d]", minFlags, b.MaxFlags)
	}
	if len(team1.Edges(MainTeam1)) == 0 {
		return nil, fmt.Errorf("team1: %w", ErrNoMainBase)
	}
	if len(team2.Edges(MainTeam2)) == 0 {
		return nil, fmt.Errorf("team2: %w", ErrNoMainBase)
	}

	byID := make(map[int]*flag.Flag, len(flags))
	for _, f := range flags {
		byID[f.ID()] = f
	}

	rng := b.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	attempts := b.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		rot, reason := b.roll(rng, byID, team1, team2, minFlags)
		if rot != nil {
			slog.Debug("rotation built", "attempt", attempt, "flags", len(rot))
			return rot, nil
		}
		slog.Debug("rotation re-rolled", "attempt", attempt, "reason", reason)
	}
	return nil, fmt.Errorf("%w: no path of length [%d, %d] after %d attempts",
		ErrRotationUnsatisfiable, minFlags, b.MaxFlags, attempts)
}

// roll makes one attempt. It returns nil and the reason on failure.
// Frontiers that touch before minFlags are walked past: the link is only
// taken once the path is long enough.
func (b *Builder) roll(rng *rand.Rand, byID map[int]*flag.Flag, team1, team2 *Graph, minFlags int) ([]*flag.Flag, string) {
	visited := make(map[int]bool)
	w1 := &walker{graph: team1, at: MainTeam1}
	w2 := &walker{graph: team2, at: MainTeam2}

	connected := func() bool {
		if len(w1.path) == 0 || len(w2.path) == 0 {
			return false
		}
		return team1.HasEdge(w1.at, w2.at) || team2.HasEdge(w2.at, w1.at)
	}

	for turn := 0; ; turn++ {
		w := w1
		if turn%2 == 1 {
			w = w2
		}
		next := pick(rng, w.graph.Edges(w.at), byID, visited)
		if next == nil {
			return nil, "dead end"
		}
		visited[next.ID()] = true
		w.at = next.ID()
		w.path = append(w.path, next)

		n := len(w1.path) + len(w2.path)
		if n > b.MaxFlags {
			return nil, "too long"
		}
		if n >= minFlags && connected() {
			break
		}
	}

	rot := make([]*flag.Flag, 0, len(w1.path)+len(w2.path))
	rot = append(rot, w1.path...)
	tail := slices.Clone(w2.path)
	slices.Reverse(tail)
	return append(rot, tail...), ""
}

// pick makes a weighted random choice among unvisited flag neighbours.
func pick(rng *rand.Rand, edges []Edge, byID map[int]*flag.Flag, visited map[int]bool) *flag.Flag {
	var total float64
	for _, e := range edges {
		if _, ok := byID[e.To]; ok && !visited[e.To] {
			total += e.Weight
		}
	}
	if total <= 0 {
		return nil
	}

	r := rng.Float64() * total
	var last *flag.Flag
	for _, e := range edges {
		f, ok := byID[e.To]
		if !ok || visited[e.To] {
			continue
		}
		last = f
		if r < e.Weight {
			return f
		}
		r -= e.Weight
	}
	return last
}
