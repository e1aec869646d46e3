package zone

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/udisondev/frontline/internal/geom"
)

const gridSize = 256.0 // world units per grid cell

// maxGridCells caps how many cells one zone is registered in. Larger zones
// are kept in a separate list that every lookup scans.
const maxGridCells = 4096

type gridKey struct {
	gx, gy int64
}

// Manager holds all zones of a map with a spatial grid for point lookups.
// Not safe for concurrent mutation; Load once, then read.
type Manager struct {
	opts      Options
	zones     []*Zone
	byID      map[int]*Zone
	byUseCase map[UseCase][]*Zone
	grid      map[gridKey][]*Zone
	oversized []*Zone
}

// NewManager creates an empty zone manager.
func NewManager(opts Options) *Manager {
	return &Manager{
		opts:      opts,
		byID:      make(map[int]*Zone),
		byUseCase: make(map[UseCase][]*Zone),
		grid:      make(map[gridKey][]*Zone),
	}
}

// Load builds every model and indexes it. Any invalid model aborts the whole
// load: a map with a broken zone must not start.
func (m *Manager) Load(models []Model) error {
	zones := make([]*Zone, 0, len(models))
	byID := make(map[int]*Zone, len(models))

	for _, md := range models {
		z, err := New(md, m.opts)
		if err != nil {
			return fmt.Errorf("loading zones: %w", err)
		}
		if _, dup := byID[z.ID()]; dup {
			return fmt.Errorf("loading zones: %w: %d", ErrDuplicateZone, z.ID())
		}
		zones = append(zones, z)
		byID[z.ID()] = z
	}

	m.zones = zones
	m.byID = byID
	m.byUseCase = make(map[UseCase][]*Zone)
	for _, z := range zones {
		m.byUseCase[z.UseCase()] = append(m.byUseCase[z.UseCase()], z)
	}
	m.buildGrid()

	slog.Info("zone manager initialized",
		"zones", len(m.zones),
		"flags", len(m.byUseCase[UseCaseFlag]),
		"grid_cells", len(m.grid),
		"oversized", len(m.oversized),
	)
	return nil
}

// Zones returns all zones in load order.
func (m *Manager) Zones() []*Zone { return m.zones }

// ByID returns a zone by its identifier, or nil if not found.
func (m *Manager) ByID(id int) *Zone { return m.byID[id] }

// ByUseCase returns all zones tagged with u.
func (m *Manager) ByUseCase(u UseCase) []*Zone { return m.byUseCase[u] }

// Flags returns all flag zones.
func (m *Manager) Flags() []*Zone { return m.byUseCase[UseCaseFlag] }

// MainBase returns the first main-base zone behind a pseudo-node
// (MainBaseTeam1 or MainBaseTeam2), or nil.
func (m *Manager) MainBase(node int) *Zone {
	var u UseCase
	switch node {
	case MainBaseTeam1:
		u = UseCaseTeam1Main
	case MainBaseTeam2:
		u = UseCaseTeam2Main
	default:
		return nil
	}
	if zs := m.byUseCase[u]; len(zs) > 0 {
		return zs[0]
	}
	return nil
}

// Models returns copies of every loaded model.
func (m *Manager) Models() []Model {
	out := make([]Model, len(m.zones))
	for i, z := range m.zones {
		out[i] = z.Model()
	}
	return out
}

// ZonesAt returns all zones containing p, smallest bounds area first so the
// most specific of overlapping zones comes first.
func (m *Manager) ZonesAt(p geom.Vec3) []*Zone {
	var result []*Zone
	for _, z := range m.grid[cellOf(p.XY())] {
		if z.Contains(p) {
			result = append(result, z)
		}
	}
	for _, z := range m.oversized {
		if z.Contains(p) {
			result = append(result, z)
		}
	}
	slices.SortStableFunc(result, func(a, b *Zone) int {
		return cmp.Compare(a.Shape().BoundsArea(), b.Shape().BoundsArea())
	})
	return result
}

// buildGrid registers each zone in every cell its bounds overlap, or in
// oversized when that would take more than maxGridCells cells.
func (m *Manager) buildGrid() {
	m.grid = make(map[gridKey][]*Zone)
	m.oversized = nil
	for _, z := range m.zones {
		b := z.Shape().Bounds()
		if cellSpan(b) > maxGridCells {
			m.oversized = append(m.oversized, z)
			continue
		}
		lo, hi := cellOf(b.Min), cellOf(b.Max)
		for gx := lo.gx; gx <= hi.gx; gx++ {
			for gy := lo.gy; gy <= hi.gy; gy++ {
				key := gridKey{gx: gx, gy: gy}
				m.grid[key] = append(m.grid[key], z)
			}
		}
	}
}

// cellSpan counts the cells b overlaps. Float math: huge bounds must not
// overflow the int64 cell keys.
func cellSpan(b geom.Rect) float64 {
	nx := math.Floor(b.Max.X/gridSize) - math.Floor(b.Min.X/gridSize) + 1
	ny := math.Floor(b.Max.Y/gridSize) - math.Floor(b.Min.Y/gridSize) + 1
	return nx * ny
}

func cellOf(p geom.Vec2) gridKey {
	return gridKey{
		gx: int64(math.Floor(p.X / gridSize)),
		gy: int64(math.Floor(p.Y / gridSize)),
	}
}
