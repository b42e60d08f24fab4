package session

import (
	"sync"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// Hub manages all active collaboration rooms on this instance.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewHub() *Hub { return &Hub{rooms: make(map[string]*Room)} }

func (h *Hub) GetOrCreate(id string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[id]; ok {
		return r
	}
	r := NewRoom(id)
	h.rooms[id] = r
	return r
}

// Join adds the peer to the session's room, creating the room if needed.
// Membership changes go through the hub lock so Leave can reap an empty
// room without a concurrent joiner landing in it.
func (h *Hub) Join(id string, p *Peer) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[id]
	if !ok {
		r = NewRoom(id)
		h.rooms[id] = r
	}
	r.Join(p)
	return r
}

// Leave removes the peer and reaps the room once its last peer is gone.
func (h *Hub) Leave(id string, p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[id]
	if !ok {
		return
	}
	if r.Leave(p) == 0 {
		delete(h.rooms, id)
	}
}

// Deliver routes a record update to the matching room, if any peers for that
// session are connected here.
func (h *Hub) Deliver(rec models.CodeSession) {
	h.mu.RLock()
	room, ok := h.rooms[rec.SessionID]
	h.mu.RUnlock()
	if ok {
		room.Deliver(rec)
	}
}
