// Package gamemode runs a flag match: it builds the rotation, drives
// occupancy and capture scoring from ticks, moves each team's objective
// along the rotation and declares the winner.
//
// Everything except Snapshot and Run must be called from the goroutine that
// drives Tick. Other goroutines read Snapshot.
package gamemode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/udisondev/frontline/internal/config"
	"github.com/udisondev/frontline/internal/game/flag"
	"github.com/udisondev/frontline/internal/game/rotation"
	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/model"
)

var (
	ErrNotLoaded      = errors.New("gamemode not loaded")
	ErrAlreadyRunning = errors.New("match already running")
	ErrMatchFinished  = errors.New("match finished")
)

// Gamemode is the flag match loop.
type Gamemode struct {
	cfg    config.Gamemode
	zones  *zone.Manager
	roster model.Roster

	tickets    TicketManager
	tieBreaker flag.TieBreaker
	rng        *rand.Rand
	listeners  []Listener

	loaded   bool
	flags    []*flag.Flag
	team1    *rotation.Graph
	team2    *rotation.Graph
	rotation []*flag.Flag

	phase       Phase
	winner      model.Team
	tick        uint64
	stagingLeft int
	// obj holds each team's objective index; obj[Team1] runs forward from 0,
	// obj[Team2] backward from the last index.
	obj       [3]int
	contested map[int]bool

	snapshot atomic.Pointer[Snapshot]
	running  atomic.Bool
}

// New creates a paused gamemode. Load must be called before StartMatch.
func New(cfg config.Gamemode, zones *zone.Manager, roster model.Roster, opts ...Option) (*Gamemode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gamemode config: %w", err)
	}
	g := &Gamemode{
		cfg:       cfg,
		zones:     zones,
		roster:    roster,
		contested: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g.obj = [3]int{flag.NoIndex, flag.NoIndex, flag.NoIndex}
	g.publish()
	return g, nil
}

// Load wraps every flag zone of the zone manager into a flag and builds the
// adjacency graphs. Flags from a previous Load are disposed.
func (g *Gamemode) Load() error {
	if g.phase == PhaseStaging || g.phase == PhaseActive {
		return ErrAlreadyRunning
	}
	zs := g.zones.Flags()
	if len(zs) == 0 {
		return errors.New("loading gamemode: no flag zones")
	}

	for _, f := range g.flags {
		f.Dispose()
	}

	flags := make([]*flag.Flag, 0, len(zs))
	for _, z := range zs {
		f := flag.New(z)
		f.OnOwnerChanged(g.onOwnerChanged)
		f.OnPointsChanged(g.onPointsChanged)
		f.OnPlayerEntered(g.onPlayerEntered)
		f.OnPlayerLeft(g.onPlayerLeft)
		flags = append(flags, f)
	}

	g.flags = flags
	g.team1 = rotation.FromModels(g.zones.Models())
	g.team2 = g.team1.Transpose()
	g.rotation = nil
	g.loaded = true

	slog.Info("gamemode loaded", "flags", len(flags))
	g.publish()
	return nil
}

// StartMatch builds a fresh rotation, resets every flag and enters staging.
// A rotation error leaves the phase unchanged: the match refuses to start.
func (g *Gamemode) StartMatch() error {
	if !g.loaded {
		return ErrNotLoaded
	}
	if g.phase == PhaseStaging || g.phase == PhaseActive {
		return ErrAlreadyRunning
	}

	b := rotation.Builder{
		MinFlags:    g.cfg.MinFlags,
		MaxFlags:    g.cfg.MaxUIFlags,
		MaxAttempts: g.cfg.RotationAttempts,
		Rand:        g.rng,
	}
	rot, err := b.Build(g.flags, g.team1, g.team2)
	if err != nil {
		return fmt.Errorf("starting match: %w", err)
	}

	for _, f := range g.flags {
		f.Reset()
		f.SetIndex(flag.NoIndex)
	}
	for i, f := range rot {
		f.SetIndex(i)
	}
	g.rotation = rot
	g.winner = model.TeamNone
	g.tick = 0
	g.stagingLeft = g.cfg.StagingTicks
	clear(g.contested)

	ids := make([]int, len(rot))
	for i, f := range rot {
		ids[i] = f.ID()
	}
	slog.Info("match starting", "rotation", ids, "staging_ticks", g.cfg.StagingTicks)

	g.obj = [3]int{flag.NoIndex, flag.NoIndex, flag.NoIndex}
	g.setObjective(model.Team1, 0)
	g.setObjective(model.Team2, len(rot)-1)

	g.setPhase(PhaseStaging)
	if g.stagingLeft <= 0 {
		g.setPhase(PhaseActive)
	}
	g.publish()
	return nil
}

// EndMatch stops scoring without a winner.
func (g *Gamemode) EndMatch() {
	if g.phase == PhasePaused || g.phase == PhaseFinished {
		return
	}
	slog.Info("match ended", "tick", g.tick)
	g.setPhase(PhaseFinished)
	g.publish()
}

// Tick advances the match by one step. Occupancy is recomputed every tick;
// capture is evaluated every cfg.EvaluateEveryTicks ticks.
func (g *Gamemode) Tick(dt time.Duration) {
	switch g.phase {
	case PhaseStaging:
		g.tick++
		g.stagingLeft--
		if g.stagingLeft <= 0 {
			g.setPhase(PhaseActive)
		}
		g.publish()
		return
	case PhaseActive:
	default:
		return
	}

	g.tick++
	players := g.roster.OnlinePlayers()
	for _, f := range g.rotation {
		f.RecomputeOccupants(players, g.cfg.AllowPassengerCapture)
	}

	if g.tick%uint64(g.cfg.EvaluateEveryTicks) == 0 {
		g.evaluate()
	}

	slog.Debug("match tick", "tick", g.tick, "dt", dt, "players", len(players))
	g.publish()
}

// evaluate runs one scoring pass in rotation order. A win freezes the rest.
func (g *Gamemode) evaluate() {
	rules := flag.Rules{
		RequiredDifference: g.cfg.RequiredCapperDifference,
		CaptureScale:       g.cfg.CaptureScale,
		TieBreaker:         g.tieBreaker,
		Strict:             g.cfg.Debug,
	}
	for _, f := range g.rotation {
		if g.phase != PhaseActive {
			return
		}
		res := f.EvaluateCapture(g.objectiveOf(f), rules)
		if g.contested[f.ID()] != res.Contested {
			g.contested[f.ID()] = res.Contested
			g.emitFlag(f)
		}
	}
}

// Rotation returns the current rotation in order. Callers must not modify it.
func (g *Gamemode) Rotation() []*flag.Flag { return g.rotation }

// Flags returns every loaded flag, in or out of the rotation.
func (g *Gamemode) Flags() []*flag.Flag { return g.flags }

// Objective returns the flag team t is attacking, or nil.
func (g *Gamemode) Objective(t model.Team) *flag.Flag {
	if !t.Valid() {
		return nil
	}
	return g.flagAt(g.obj[t])
}

// Phase returns the current phase.
func (g *Gamemode) Phase() Phase { return g.phase }

// Winner returns the team that won, TeamNone until then.
func (g *Gamemode) Winner() model.Team { return g.winner }

// Snapshot returns the last published view. Safe from any goroutine.
func (g *Gamemode) Snapshot() *Snapshot { return g.snapshot.Load() }

// Run drives Tick from a ticker at cfg.TickRate until ctx is canceled.
// It is the single writer; only one Run may be active.
func (g *Gamemode) Run(ctx context.Context) error {
	if !g.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer g.running.Store(false)

	ticker := time.NewTicker(g.cfg.TickRate)
	defer ticker.Stop()

	slog.Info("gamemode loop started", "tick_rate", g.cfg.TickRate)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("gamemode loop stopping", "tick", g.tick)
			return nil
		case now := <-ticker.C:
			g.Tick(now.Sub(last))
			last = now
		}
	}
}

func (g *Gamemode) flagAt(i int) *flag.Flag {
	if i < 0 || i >= len(g.rotation) {
		return nil
	}
	return g.rotation[i]
}

func (g *Gamemode) objectiveOf(f *flag.Flag) flag.Objective {
	i := f.Index()
	if i == flag.NoIndex {
		return flag.Objective{}
	}
	return flag.Objective{
		Team1: g.obj[model.Team1] == i,
		Team2: g.obj[model.Team2] == i,
	}
}

func (g *Gamemode) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	old := g.phase
	g.phase = p
	slog.Info("match phase changed", "from", old, "to", p)
	for _, l := range g.listeners {
		l.PhaseChanged(old, p)
	}
}
