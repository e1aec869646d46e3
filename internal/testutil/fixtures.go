package testutil

import (
	"fmt"

	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/geom"
	"github.com/udisondev/frontline/internal/model"
)

// FlagSpacing — расстояние между флагами в ChainZones по оси X.
const FlagSpacing = 100.0

// ChainZones returns a map whose only rotation of n flags is 1..n:
// team 1 main → flag 1 → … → flag n → team 2 main. Flag i is a circle of
// radius 10 at (i*FlagSpacing, 0). Odd flags carry a height clamp, the last
// flag is a square polygon so every shape kind is exercised.
func ChainZones(n int) []zone.Model {
	models := []zone.Model{
		{
			ID:          1000,
			Name:        "Team 1 Main",
			UseCase:     zone.UseCaseTeam1Main,
			Center:      geom.Vec2{X: -500},
			Spawn:       geom.Vec3{X: -500, Z: 5},
			Rectangle:   &zone.RectangleData{SizeX: 100, SizeY: 60},
			Adjacencies: []zone.Adjacency{{TargetID: 1, Weight: 1}},
		},
		{
			ID:      2000,
			Name:    "Team 2 Main",
			UseCase: zone.UseCaseTeam2Main,
			Center:  geom.Vec2{X: float64(n+5) * FlagSpacing},
			Circle:  &zone.CircleData{Radius: 50},
		},
	}

	for id := 1; id <= n; id++ {
		next := id + 1
		if id == n {
			next = zone.MainBaseTeam2
		}
		center := geom.Vec2{X: float64(id) * FlagSpacing}
		m := zone.Model{
			ID:          id,
			Name:        fmt.Sprintf("Flag %d", id),
			ShortName:   fmt.Sprintf("F%d", id),
			UseCase:     zone.UseCaseFlag,
			Center:      center,
			Adjacencies: []zone.Adjacency{{TargetID: next, Weight: 1}},
		}
		if id == n {
			m.Polygon = &zone.PolygonData{Points: []geom.Vec2{
				center.Add(geom.Vec2{X: -10, Y: -10}),
				center.Add(geom.Vec2{X: 10, Y: -10}),
				center.Add(geom.Vec2{X: 10, Y: 10}),
				center.Add(geom.Vec2{X: -10, Y: 10}),
			}}
		} else {
			m.Circle = &zone.CircleData{Radius: 10}
		}
		if id%2 == 1 {
			lo, hi := -10.0, 100.0
			m.MinHeight, m.MaxHeight = &lo, &hi
		}
		models = append(models, m)
	}
	return models
}

// FlagPosition returns the center of flag id in ChainZones.
func FlagPosition(id int) geom.Vec3 {
	return geom.Vec3{X: float64(id) * FlagSpacing}
}

// Player returns an alive player.
func Player(id model.PlayerID, team model.Team, pos geom.Vec3) model.Player {
	return model.Player{
		ID:       id,
		Name:     fmt.Sprintf("player-%d", id),
		Team:     team,
		Position: pos,
		Alive:    true,
	}
}

// Squad returns n alive players of team at pos with consecutive ids.
func Squad(team model.Team, firstID model.PlayerID, n int, pos geom.Vec3) []model.Player {
	out := make([]model.Player, n)
	for i := range n {
		out[i] = Player(firstID+model.PlayerID(i), team, pos)
		out[i].SquadID = 1
	}
	return out
}
