package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/ksolsim/football-simulator/internal/sim"
)

// WSMessage is the envelope for all WebSocket communication.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client is a connected match spectator.
type Client struct {
	ID      uuid.UUID
	MatchID string
	conn    *websocket.Conn
	send    chan WSMessage
}

// Hub manages WebSocket spectators grouped by the match they watch.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	matches map[string]map[uuid.UUID]*Client
	metrics *Metrics
	logger  *slog.Logger
}

func NewHub(metrics *Metrics, logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
		matches: make(map[string]map[uuid.UUID]*Client),
		metrics: metrics,
		logger:  logger,
	}
}

// ServeHTTP upgrades a spectator connection. The match to watch comes from
// the path; feeds are public so there is no handshake beyond the upgrade.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	if _, err := uuid.Parse(matchID); err != nil {
		http.Error(w, "bad match id", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("ws accept", "err", err)
		return
	}

	client := &Client{
		ID:      uuid.New(),
		MatchID: matchID,
		conn:    conn,
		send:    make(chan WSMessage, 64),
	}

	h.register(client)
	h.metrics.IncrWSConn()
	defer func() {
		h.unregister(client)
		h.metrics.DecrWSConn()
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.writePump(ctx, client)
	h.readPump(ctx, client)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
	if _, ok := h.matches[c.MatchID]; !ok {
		h.matches[c.MatchID] = make(map[uuid.UUID]*Client)
	}
	h.matches[c.MatchID][c.ID] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.send)
	}
	if watchers, ok := h.matches[c.MatchID]; ok {
		delete(watchers, c.ID)
		if len(watchers) == 0 {
			delete(h.matches, c.MatchID)
		}
	}
}

// Broadcast sends a message to every spectator of a match.
func (h *Hub) Broadcast(matchID string, msg WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.matches[matchID] {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("client send buffer full", "client", c.ID)
		}
	}
}

// Watchers reports how many spectators a match currently has.
func (h *Hub) Watchers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.matches[matchID])
}

// feedFrame is one minute of a replay as sent to spectators.
type feedFrame struct {
	Minute int         `json:"minute"`
	Score  [2]int      `json:"score"`
	Events []sim.Event `json:"events,omitempty"`
}

// StreamReplay plays a finished match back to its spectators one simulated
// minute per pace interval. The result is final before streaming starts, so
// the feed is a paced reading of the event log, not a live simulation.
func (h *Hub) StreamReplay(ctx context.Context, matchID string, res sim.Result, pace time.Duration) {
	h.metrics.IncrLiveFeeds()
	defer h.metrics.DecrLiveFeeds()

	byMinute := make(map[int][]sim.Event)
	for _, ev := range res.Events {
		byMinute[ev.Minute] = append(byMinute[ev.Minute], ev)
	}

	ticker := time.NewTicker(pace)
	defer ticker.Stop()

	var score [2]int
	for minute := 0; minute <= res.Minutes; minute++ {
		events := byMinute[minute]
		for _, ev := range events {
			if ev.Kind == sim.EventGoal {
				score[ev.Side]++
			}
		}
		if len(events) == 0 && minute%5 != 0 {
			continue // only heartbeat quiet minutes every so often
		}
		payload, err := json.Marshal(feedFrame{Minute: minute, Score: score, Events: events})
		if err != nil {
			h.logger.Error("marshal feed frame", "err", err)
			return
		}
		h.Broadcast(matchID, WSMessage{Type: "minute", Payload: payload})

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
	h.Broadcast(matchID, WSMessage{Type: "full_time"})
}

func (h *Hub) readPump(ctx context.Context, c *Client) {
	defer func() {
		if err := c.conn.CloseNow(); err != nil {
			h.logger.Error("close conn", "err", err)
		}
	}()
	// Spectator feeds are one-way; inbound frames are drained and dropped
	// so pings and stray messages don't stall the connection.
	for {
		var msg WSMessage
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(ctx context.Context, c *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			if err := wsjson.Write(ctx, c.conn, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
