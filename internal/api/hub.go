package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/frontline/internal/game/gamemode"
	"github.com/udisondev/frontline/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	clientSendSize = 256
	broadcastSize  = 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // карта рендерится с любого origin
	},
}

// Message types pushed to websocket clients.
const (
	MsgSnapshot      = "snapshot"
	MsgPhase         = "phase"
	MsgFlag          = "flag"
	MsgObjective     = "objective"
	MsgPlayerEntered = "player_entered"
	MsgPlayerLeft    = "player_left"
	MsgWin           = "win"
)

// WSMessage is the envelope of every websocket message.
type WSMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// PhasePayload is sent on phase changes.
type PhasePayload struct {
	From gamemode.Phase `json:"from"`
	To   gamemode.Phase `json:"to"`
}

// ObjectivePayload is sent when a team's objective moves.
type ObjectivePayload struct {
	Team model.Team `json:"team"`
	From int        `json:"from"`
	To   int        `json:"to"`
}

// PlayerPayload is sent when a player enters or leaves a flag.
type PlayerPayload struct {
	Flag   int            `json:"flag"`
	Player model.PlayerID `json:"player"`
	Team   model.Team     `json:"team"`
}

// WinPayload is sent when a team wins.
type WinPayload struct {
	Team model.Team `json:"team"`
}

// Hub fans match events out to websocket clients. It implements
// gamemode.Listener; listener calls never block the tick goroutine, a full
// broadcast queue drops the event.
type Hub struct {
	match      SnapshotSource
	clients    map[*Client]bool
	broadcast  chan WSMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

var _ gamemode.Listener = (*Hub)(nil)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan WSMessage
}

// NewHub creates a hub. New clients first receive match's current snapshot.
func NewHub(match SnapshotSource) *Hub {
	return &Hub{
		match:      match,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WSMessage, broadcastSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// SetSource sets the snapshot source sent to new clients. Call before Run.
func (h *Hub) SetSource(match SnapshotSource) {
	h.match = match
}

// Run handles registration and broadcasting until ctx is canceled.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			slog.Info("websocket hub stopped")
			return nil

		case c := <-h.register:
			h.clients[c] = true
			slog.Debug("websocket client connected", "clients", len(h.clients))
			if h.match != nil {
				c.send <- WSMessage{Type: MsgSnapshot, Payload: h.match.Snapshot()}
			}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			slog.Debug("websocket client disconnected", "clients", len(h.clients))

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Клиент не успевает читать, отключаем
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues a message for every client without blocking.
func (h *Hub) Broadcast(msgType string, payload any) {
	select {
	case h.broadcast <- WSMessage{Type: msgType, Payload: payload}:
	default:
		slog.Warn("websocket broadcast queue full, dropping", "type", msgType)
	}
}

func (h *Hub) PhaseChanged(old, next gamemode.Phase) {
	h.Broadcast(MsgPhase, PhasePayload{From: old, To: next})
}

func (h *Hub) FlagUpdated(state gamemode.FlagState) {
	h.Broadcast(MsgFlag, state)
}

func (h *Hub) ObjectiveChanged(team model.Team, oldIndex, newIndex int) {
	h.Broadcast(MsgObjective, ObjectivePayload{Team: team, From: oldIndex, To: newIndex})
}

func (h *Hub) PlayerEntered(flagID int, p model.Player) {
	h.Broadcast(MsgPlayerEntered, PlayerPayload{Flag: flagID, Player: p.ID, Team: p.Team})
}

func (h *Hub) PlayerLeft(flagID int, p model.Player) {
	h.Broadcast(MsgPlayerLeft, PlayerPayload{Flag: flagID, Player: p.ID, Team: p.Team})
}

func (h *Hub) MatchWon(team model.Team) {
	h.Broadcast(MsgWin, WinPayload{Team: team})
}

// ServeWs upgrades the request and registers the client.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan WSMessage, clientSendSize),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards client messages and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("websocket read error", "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
