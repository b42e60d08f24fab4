package session

import (
	"sync"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// Room holds the peers connected to one interview session on this instance.
type Room struct {
	ID    string
	mu    sync.Mutex
	peers map[*Peer]struct{}
}

func NewRoom(id string) *Room {
	return &Room{ID: id, peers: make(map[*Peer]struct{})}
}

func (r *Room) Join(p *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[p] = struct{}{}
}

func (r *Room) Leave(p *Peer) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.peers, p)
	return len(r.peers)
}

func (r *Room) PeerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// Deliver fans a record update out to every peer, including the writer:
// reconciliation no-ops when the buffer already matches, so the writer's own
// echo is harmless. Peers whose buffer changed are sent the new code with
// their restored cursor.
func (r *Room) Deliver(rec models.CodeSession) {
	r.mu.Lock()
	peers := make([]*Peer, 0, len(r.peers))
	for p := range r.peers {
		peers = append(peers, p)
	}
	r.mu.Unlock()

	for _, p := range peers {
		if !p.Reconcile(rec) {
			continue
		}
		code, cursor, _, _ := p.Snapshot()
		p.Client.Send(models.WSFrame{Type: "code", Data: models.Edit{Code: code, Cursor: cursor}})
	}
}
