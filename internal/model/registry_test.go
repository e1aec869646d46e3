package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontline/internal/geom"
)

func TestRegistryUpsertAndSnapshot(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	r.Upsert(Player{ID: 3, Name: "c", Team: Team2})
	r.Upsert(Player{ID: 1, Name: "a", Team: Team1})
	r.Upsert(Player{ID: 2, Name: "b", Team: Team1})
	r.Upsert(Player{ID: 1, Name: "a", Team: Team1, Position: geom.Vec3{X: 5}})

	players := r.OnlinePlayers()
	require.Len(t, players, 3)
	assert.Equal(t, []PlayerID{1, 2, 3}, []PlayerID{players[0].ID, players[1].ID, players[2].ID})
	assert.Equal(t, 5.0, players[0].Position.X)

	// Снимок — копия: изменения не видны реестру.
	players[0].Name = "changed"
	p, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", p.Name)

	assert.True(t, r.Remove(2))
	assert.False(t, r.Remove(2))
	assert.Equal(t, 2, r.Len())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := range 100 {
				r.Upsert(Player{ID: PlayerID(base*1000 + j), Team: Team1})
				_ = r.OnlinePlayers()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 800, r.Len())
}

func TestPlayerCanCapture(t *testing.T) {
	tests := []struct {
		name            string
		p               Player
		allowPassengers bool
		want            bool
	}{
		{"infantry", Player{Team: Team1, Alive: true}, false, true},
		{"dead", Player{Team: Team1}, false, false},
		{"no team", Player{Alive: true}, false, false},
		{"driver", Player{Team: Team2, Alive: true, InVehicle: true}, false, true},
		{"passenger", Player{Team: Team2, Alive: true, InVehicle: true, Passenger: true}, false, false},
		{"passenger allowed", Player{Team: Team2, Alive: true, InVehicle: true, Passenger: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.CanCapture(tt.allowPassengers))
		})
	}
}

func TestTeam(t *testing.T) {
	assert.Equal(t, Team2, Team1.Other())
	assert.Equal(t, Team1, Team2.Other())
	assert.Equal(t, TeamNone, TeamNone.Other())
	assert.Equal(t, 1.0, Team1.Sign())
	assert.Equal(t, -1.0, Team2.Sign())

	var tm Team
	require.NoError(t, tm.UnmarshalText([]byte("team2")))
	assert.Equal(t, Team2, tm)
	assert.Error(t, tm.UnmarshalText([]byte("team3")))
}
