// Package server exposes the websocket transport: per-player addressed
// sends, match broadcast and forced teardown. The rules engine sees it only
// through the game.Emitter boundary.
package server

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub tracks connected clients grouped by match.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]*room
	logger *zap.Logger
}

type room struct {
	clients map[string]*Client // player id -> client
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]*room),
		logger: logger,
	}
}

// Join registers a client under a match id. A reconnect replaces the old
// connection.
func (h *Hub) Join(matchID string, client *Client) {
	h.mu.Lock()
	rm, ok := h.rooms[matchID]
	if !ok {
		rm = &room{clients: make(map[string]*Client)}
		h.rooms[matchID] = rm
	}
	if old, exists := rm.clients[client.playerID]; exists {
		old.Close()
	}
	rm.clients[client.playerID] = client
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Info("client joined match",
			zap.String("match_id", matchID),
			zap.String("player_id", client.playerID),
		)
	}
}

// Leave removes a client from its match room.
func (h *Hub) Leave(matchID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rm, ok := h.rooms[matchID]
	if !ok {
		return
	}
	if current, exists := rm.clients[client.playerID]; exists && current == client {
		delete(rm.clients, client.playerID)
	}
	if len(rm.clients) == 0 {
		delete(h.rooms, matchID)
	}
}

// RoomSize returns how many players are connected to a match.
func (h *Hub) RoomSize(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rm, ok := h.rooms[matchID]
	if !ok {
		return 0
	}
	return len(rm.clients)
}

func (h *Hub) sendTo(matchID, playerID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("marshal payload", zap.Error(err))
		}
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if rm, ok := h.rooms[matchID]; ok {
		if client, exists := rm.clients[playerID]; exists {
			client.Send(data)
		}
	}
}

func (h *Hub) broadcast(matchID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("marshal payload", zap.Error(err))
		}
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if rm, ok := h.rooms[matchID]; ok {
		for _, client := range rm.clients {
			client.Send(data)
		}
	}
}

func (h *Hub) shutdownMatch(matchID string) {
	h.mu.Lock()
	rm, ok := h.rooms[matchID]
	if ok {
		delete(h.rooms, matchID)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	for _, client := range rm.clients {
		client.Close()
	}
	if h.logger != nil {
		h.logger.Info("match channel closed", zap.String("match_id", matchID))
	}
}

// MatchChannel adapts one match's room to the game.Emitter boundary.
type MatchChannel struct {
	hub     *Hub
	matchID string
}

// NewMatchChannel creates the emitter for a match.
func NewMatchChannel(hub *Hub, matchID string) *MatchChannel {
	return &MatchChannel{hub: hub, matchID: matchID}
}

// SendTo delivers a payload to a single participant.
func (c *MatchChannel) SendTo(playerID string, payload any) {
	c.hub.sendTo(c.matchID, playerID, payload)
}

// Broadcast delivers a payload to every participant of the match.
func (c *MatchChannel) Broadcast(payload any) {
	c.hub.broadcast(c.matchID, payload)
}

// Shutdown forcibly terminates all participants' connections.
func (c *MatchChannel) Shutdown() {
	c.hub.shutdownMatch(c.matchID)
}
