// Package api exposes the match to renderers and tools over HTTP and
// websockets. Match state is read from published snapshots only; the one
// write path into the game is the player feed, which lands in the roster.
package api

import (
	"fmt"
	"net/http"

	"github.com/udisondev/frontline/internal/game/gamemode"
	"github.com/udisondev/frontline/internal/game/zone"
	"github.com/udisondev/frontline/internal/geom"
	"github.com/udisondev/frontline/internal/model"
)

// SnapshotSource provides the latest match view. *gamemode.Gamemode implements it.
type SnapshotSource interface {
	Snapshot() *gamemode.Snapshot
}

// ZoneSink persists authored zones out of band. *db.ZoneWriter implements it.
type ZoneSink interface {
	Enqueue(m zone.Model) bool
	EnqueueDelete(id int) bool
}

// Handlers holds the dependencies of every route.
type Handlers struct {
	Match   SnapshotSource
	Zones   *zone.Manager
	Players *model.Registry
	Hub     *Hub
	// Sink is optional; without it zone authoring answers 503.
	Sink ZoneSink
}

// ZoneResponse describes a loaded zone for rendering.
type ZoneResponse struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	ShortName string       `json:"short_name"`
	UseCase   zone.UseCase `json:"use_case"`
	Kind      string       `json:"kind"`
	Center    geom.Vec2    `json:"center"`
	Bounds    geom.Rect    `json:"bounds"`
}

// PerimeterResponse is a zone outline sampled for drawing.
type PerimeterResponse struct {
	ID     int         `json:"id"`
	Points []geom.Vec2 `json:"points"`
}

// PlayerUpdate is one position report from the game server.
type PlayerUpdate struct {
	Name      string     `json:"name"`
	Team      model.Team `json:"team"`
	Position  geom.Vec3  `json:"position"`
	Alive     bool       `json:"alive"`
	InVehicle bool       `json:"in_vehicle"`
	Passenger bool       `json:"passenger"`
	SquadID   int        `json:"squad_id"`
}

func zoneResponse(z *zone.Zone) ZoneResponse {
	return ZoneResponse{
		ID:        z.ID(),
		Name:      z.Name(),
		ShortName: z.ShortName(),
		UseCase:   z.UseCase(),
		Kind:      z.Shape().Kind().String(),
		Center:    z.Shape().Center(),
		Bounds:    z.Shape().Bounds(),
	}
}

func (h *Handlers) handleMatch(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Match.Snapshot())
}

func (h *Handlers) handleFlags(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Match.Snapshot().Flags)
}

func (h *Handlers) handleFlag(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	state, ok := h.Match.Snapshot().Flag(id)
	if !ok {
		respondError(w, NotFound(fmt.Sprintf("Flag %d is not in the rotation", id)))
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleZones(w http.ResponseWriter, r *http.Request) {
	zs := h.Zones.Zones()
	out := make([]ZoneResponse, len(zs))
	for i, z := range zs {
		out[i] = zoneResponse(z)
	}
	respondOK(w, out)
}

func (h *Handlers) zoneFromRequest(r *http.Request) (*zone.Zone, error) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		return nil, err
	}
	z := h.Zones.ByID(id)
	if z == nil {
		return nil, NotFound(fmt.Sprintf("Zone %d not found", id))
	}
	return z, nil
}

func (h *Handlers) handleZone(w http.ResponseWriter, r *http.Request) {
	z, err := h.zoneFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, z.Model())
}

func (h *Handlers) handleZonePerimeter(w http.ResponseWriter, r *http.Request) {
	z, err := h.zoneFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, PerimeterResponse{ID: z.ID(), Points: z.Shape().PerimeterPoints()})
}

// handlePutZone validates an authored zone and queues it for storage.
// The running match keeps its loaded zones; changes apply on the next load.
func (h *Handlers) handlePutZone(w http.ResponseWriter, r *http.Request) {
	if h.Sink == nil {
		respondError(w, Unavailable("Zone storage is not configured"))
		return
	}
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var m zone.Model
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, err)
		return
	}
	m.ID = id
	if _, err := zone.New(m, zone.Options{}); err != nil {
		respondError(w, Validation(err))
		return
	}

	if !h.Sink.Enqueue(m) {
		respondError(w, Unavailable("Zone write queue is full"))
		return
	}
	respondJSON(w, http.StatusAccepted, m)
}

func (h *Handlers) handleDeleteZone(w http.ResponseWriter, r *http.Request) {
	if h.Sink == nil {
		respondError(w, Unavailable("Zone storage is not configured"))
		return
	}
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if !h.Sink.EnqueueDelete(id) {
		respondError(w, Unavailable("Zone write queue is full"))
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) handlePutPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if id <= 0 {
		respondError(w, BadRequest("Invalid id parameter"))
		return
	}

	var u PlayerUpdate
	if err := decodeJSON(r, &u); err != nil {
		respondError(w, err)
		return
	}
	if !u.Position.IsFinite() {
		respondError(w, BadRequest("Position must be finite"))
		return
	}

	p := model.Player{
		ID:        model.PlayerID(id),
		Name:      u.Name,
		Team:      u.Team,
		Position:  u.Position,
		Alive:     u.Alive,
		InVehicle: u.InVehicle,
		Passenger: u.Passenger,
		SquadID:   u.SquadID,
	}
	h.Players.Upsert(p)
	respondOK(w, p)
}

func (h *Handlers) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if !h.Players.Remove(model.PlayerID(id)) {
		respondError(w, NotFound(fmt.Sprintf("Player %d is not online", id)))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
