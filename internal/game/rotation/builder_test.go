package rotation

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontline/internal/game/flag"
	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/geom"
)

func makeFlags(t *testing.T, ids ...int) []*flag.Flag {
	t.Helper()
	out := make([]*flag.Flag, 0, len(ids))
	for _, id := range ids {
		z, err := zone.New(zone.Model{
			ID:      id,
			Name:    fmt.Sprintf("flag %d", id),
			UseCase: zone.UseCaseFlag,
			Center:  geom.Vec2{X: float64(id) * 100},
			Circle:  &zone.CircleData{Radius: 20},
		}, zone.Options{})
		require.NoError(t, err)
		out = append(out, flag.New(z))
	}
	return out
}

func idsOf(rot []*flag.Flag) []int {
	out := make([]int, len(rot))
	for i, f := range rot {
		out[i] = f.ID()
	}
	return out
}

// chainGraph: main1 → {1,2}; i → {i+1, i+2, i+3}; {7,8} → main2.
func chainGraph() *Graph {
	g := NewGraph()
	g.AddEdge(MainTeam1, 1, 1)
	g.AddEdge(MainTeam1, 2, 1)
	for i := 1; i <= 8; i++ {
		for j := i + 1; j <= min(i+3, 8); j++ {
			g.AddEdge(i, j, float64(j-i))
		}
	}
	g.AddEdge(7, MainTeam2, 1)
	g.AddEdge(8, MainTeam2, 1)
	return g
}

func TestBuildLengthAlwaysInRange(t *testing.T) {
	flags := makeFlags(t, 1, 2, 3, 4, 5, 6, 7, 8)
	g := chainGraph()
	b := &Builder{MinFlags: 4, MaxFlags: 6, MaxAttempts: 64, Rand: rand.New(rand.NewPCG(1, 2))}

	distinct := make(map[string]bool)
	for range 100 {
		rot, err := b.Build(flags, g, g.Transpose())
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(rot), 4)
		require.LessOrEqual(t, len(rot), 6)

		got := idsOf(rot)
		distinct[fmt.Sprint(got)] = true
		assert.Contains(t, []int{1, 2}, got[0], "starts next to team1 main")
		assert.Contains(t, []int{7, 8}, got[len(got)-1], "ends next to team2 main")
		for i := 1; i < len(got); i++ {
			assert.True(t, g.HasEdge(got[i-1], got[i]), "%v: %d does not link to %d", got, got[i-1], got[i])
		}
	}
	assert.Greater(t, len(distinct), 1, "weighted choice should vary between builds")
}

// denseGraph links every flag to both main bases and to every other flag,
// so the frontiers touch after the first step of each walker.
func denseGraph(n int) *Graph {
	g := NewGraph()
	for i := 1; i <= n; i++ {
		g.AddEdge(MainTeam1, i, 1)
		g.AddEdge(i, MainTeam2, 1)
		for j := 1; j <= n; j++ {
			if i != j {
				g.AddEdge(i, j, 1)
			}
		}
	}
	return g
}

func TestBuildRaisesMinimumToFloor(t *testing.T) {
	flags := makeFlags(t, 1, 2, 3, 4, 5, 6, 7, 8)
	g := denseGraph(8)
	b := &Builder{MinFlags: 2, MaxFlags: 6, Rand: rand.New(rand.NewPCG(5, 9))}

	for range 100 {
		rot, err := b.Build(flags, g, g.Transpose())
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(rot), MinRotationFlags)
		require.LessOrEqual(t, len(rot), 6)
	}
}

func TestBuildWalksPastEarlyContact(t *testing.T) {
	flags := makeFlags(t, 1, 2, 3, 4, 5, 6, 7, 8)
	g := denseGraph(8)

	tests := []struct {
		name     string
		min, max int
	}{
		{"floor", 0, 4},
		{"exact", 5, 5},
		{"range", 4, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Builder{MinFlags: tt.min, MaxFlags: tt.max, Rand: rand.New(rand.NewPCG(1, 1))}
			for range 20 {
				rot, err := b.Build(flags, g, g.Transpose())
				require.NoError(t, err)
				assert.GreaterOrEqual(t, len(rot), max(tt.min, MinRotationFlags))
				assert.LessOrEqual(t, len(rot), tt.max)
			}
		})
	}
}

func TestBuildDeterministicWithSeed(t *testing.T) {
	flags := makeFlags(t, 1, 2, 3, 4, 5, 6, 7, 8)
	g := chainGraph()

	build := func() []int {
		b := &Builder{MinFlags: 4, MaxFlags: 6, Rand: rand.New(rand.NewPCG(42, 7))}
		rot, err := b.Build(flags, g, g.Transpose())
		require.NoError(t, err)
		return idsOf(rot)
	}
	assert.Equal(t, build(), build())
}

func TestBuildNoDuplicates(t *testing.T) {
	flags := makeFlags(t, 1, 2, 3, 4, 5, 6, 7, 8)
	g := chainGraph()
	b := &Builder{MinFlags: 4, MaxFlags: 8, Rand: rand.New(rand.NewPCG(3, 3))}

	for range 50 {
		rot, err := b.Build(flags, g, g.Transpose())
		require.NoError(t, err)
		seen := make(map[int]bool)
		for _, id := range idsOf(rot) {
			require.False(t, seen[id], "flag %d twice", id)
			seen[id] = true
		}
	}
}

func TestBuildSkipsUnknownAndUnreachable(t *testing.T) {
	// 99 is referenced but not a flag; 50 is a flag nobody links to.
	flags := makeFlags(t, 1, 2, 3, 4, 50)
	g := NewGraph()
	g.AddEdge(MainTeam1, 99, 100)
	g.AddEdge(MainTeam1, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, 4, 1)
	g.AddEdge(4, MainTeam2, 1)

	b := &Builder{MinFlags: 4, MaxFlags: 6, Rand: rand.New(rand.NewPCG(1, 1))}
	rot, err := b.Build(flags, g, g.Transpose())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, idsOf(rot))
}

func TestBuildUnsatisfiable(t *testing.T) {
	flags := makeFlags(t, 1, 2, 3)
	g := NewGraph()
	g.AddEdge(MainTeam1, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	g.AddEdge(3, MainTeam2, 1)

	b := &Builder{MinFlags: 4, MaxFlags: 6, MaxAttempts: 5, Rand: rand.New(rand.NewPCG(1, 1))}
	_, err := b.Build(flags, g, g.Transpose())
	require.ErrorIs(t, err, ErrRotationUnsatisfiable)
}

func TestBuildDeadEnd(t *testing.T) {
	flags := makeFlags(t, 1, 2, 3, 4, 5, 6)
	g := NewGraph()
	g.AddEdge(MainTeam1, 1, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(5, 6, 1)
	g.AddEdge(6, MainTeam2, 1)

	b := &Builder{MinFlags: 4, MaxFlags: 6, MaxAttempts: 3}
	_, err := b.Build(flags, g, g.Transpose())
	require.ErrorIs(t, err, ErrRotationUnsatisfiable)
}

func TestBuildNoMainBase(t *testing.T) {
	flags := makeFlags(t, 1, 2)
	g := NewGraph()
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, MainTeam2, 1)

	b := &Builder{MinFlags: 4, MaxFlags: 6}
	_, err := b.Build(flags, g, g.Transpose())
	require.ErrorIs(t, err, ErrNoMainBase)
}

func TestBuildInvalidBounds(t *testing.T) {
	g := chainGraph()

	tests := []struct {
		name string
		b    Builder
	}{
		{"max below min", Builder{MinFlags: 5, MaxFlags: 4}},
		{"max below floor", Builder{MinFlags: 2, MaxFlags: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build(makeFlags(t, 1), g, g.Transpose())
			require.Error(t, err)
		})
	}
}
