package rotation

import (
	"maps"
	"slices"

	"github.com/udisondev/frontline/internal/game/zone"
)

// Pseudo-nodes standing for each team's main base.
const (
	MainTeam1 = zone.MainBaseTeam1
	MainTeam2 = zone.MainBaseTeam2
)

// Edge is a weighted directed link between two nodes.
type Edge struct {
	To     int
	Weight float64
}

// Graph is a directed, weighted adjacency graph keyed by node id.
type Graph struct {
	edges map[int][]Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{edges: make(map[int][]Edge)}
}

// AddEdge links from to to. A repeated link overwrites the weight.
func (g *Graph) AddEdge(from, to int, weight float64) {
	list := g.edges[from]
	for i := range list {
		if list[i].To == to {
			list[i].Weight = weight
			return
		}
	}
	g.edges[from] = append(list, Edge{To: to, Weight: weight})
}

// Edges returns the outgoing links of a node in insertion order.
// Callers must not modify the slice.
func (g *Graph) Edges(from int) []Edge {
	return g.edges[from]
}

// HasEdge reports whether from links directly to to.
func (g *Graph) HasEdge(from, to int) bool {
	for _, e := range g.edges[from] {
		if e.To == to {
			return true
		}
	}
	return false
}

// Nodes returns every node with outgoing links, sorted.
func (g *Graph) Nodes() []int {
	return slices.Sorted(maps.Keys(g.edges))
}

// Transpose returns the graph with every link reversed, keeping weights.
func (g *Graph) Transpose() *Graph {
	t := NewGraph()
	for _, from := range g.Nodes() {
		for _, e := range g.edges[from] {
			t.AddEdge(e.To, from, e.Weight)
		}
	}
	return t
}

// FromModels builds the team-1 direction graph from the zones' declared
// adjacencies. Main-base zones are folded into their pseudo-nodes, both as
// sources and as targets, so authors can reference either the zone id or
// MainBaseTeam1/MainBaseTeam2.
func FromModels(models []zone.Model) *Graph {
	alias := make(map[int]int)
	for _, m := range models {
		switch m.UseCase {
		case zone.UseCaseTeam1Main:
			alias[m.ID] = MainTeam1
		case zone.UseCaseTeam2Main:
			alias[m.ID] = MainTeam2
		}
	}
	node := func(id int) int {
		if a, ok := alias[id]; ok {
			return a
		}
		return id
	}

	g := NewGraph()
	for _, m := range models {
		from := node(m.ID)
		for _, adj := range m.Adjacencies {
			to := node(adj.TargetID)
			if to == from {
				continue
			}
			g.AddEdge(from, to, adj.Weight)
		}
	}
	return g
}
