package ws

import (
	"encoding/json"
	"sync"

	"coachpay/internal/models"
)

// Client is one live dashboard connection.
type Client struct {
	StaffID uint
	Send    chan []byte
	hub     *LeaderboardHub
	mu      sync.Mutex
	closed  bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// LeaderboardHub fans recomputed leaderboard snapshots out to connected
// dashboards and replays the latest snapshot per month to new connections.
type LeaderboardHub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  map[string][]byte // month -> last broadcast payload
}

func NewLeaderboardHub() *LeaderboardHub {
	return &LeaderboardHub{
		clients: make(map[*Client]struct{}),
		latest:  make(map[string][]byte),
	}
}

func (h *LeaderboardHub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	h.clients[c] = struct{}{}
}

func (h *LeaderboardHub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// BroadcastLeaderboard implements service.Broadcaster.
func (h *LeaderboardHub) BroadcastLeaderboard(snap *models.LeaderboardSnapshot) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":        "leaderboard",
		"month":       snap.Month,
		"version":     snap.Version,
		"computed_at": snap.ComputedAt,
		"entries":     snap.Entries,
	})
	if err != nil {
		return
	}
	h.mu.Lock()
	h.latest[snap.Month] = payload
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		select {
		case c.Send <- payload:
		default:
			// Slow consumer; drop the frame rather than block the sync job.
		}
	}
}

// Latest returns the last broadcast payload for a month, if any.
func (h *LeaderboardHub) Latest(month string) ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.latest[month]
	return p, ok
}
