package session

import (
	"sync"
	"testing"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

type frameCapture struct {
	mu     sync.Mutex
	frames []models.WSFrame
}

func (c *frameCapture) hook(frame models.WSFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, frame)
}

func (c *frameCapture) list() []models.WSFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.WSFrame, len(c.frames))
	copy(out, c.frames)
	return out
}

func joinPeer(room *Room, userID, code string) (*Peer, *frameCapture) {
	client := NewClient(nil)
	capture := &frameCapture{}
	client.SetSendHook(capture.hook)
	p := NewPeer(userID, client)
	p.Init(code, models.DefaultLanguage, "q")
	room.Join(p)
	return p, capture
}

func TestDeliverSendsChangedPeersTheNewCode(t *testing.T) {
	room := NewRoom("s1")
	_, aliceFrames := joinPeer(room, "alice", "old")
	_, bobFrames := joinPeer(room, "bob", "old")

	room.Deliver(models.CodeSession{SessionID: "s1", Code: "updated"})

	for name, capture := range map[string]*frameCapture{"alice": aliceFrames, "bob": bobFrames} {
		if len(capture.list()) != 1 {
			t.Fatalf("%s: expected one frame, got %d", name, len(capture.list()))
		}
		if capture.list()[0].Type != "code" {
			t.Fatalf("%s: expected a code frame, got %q", name, capture.list()[0].Type)
		}
		edit, ok := capture.list()[0].Data.(models.Edit)
		if !ok || edit.Code != "updated" {
			t.Fatalf("%s: unexpected frame data %#v", name, capture.list()[0].Data)
		}
	}
}

// The writer's own echo arrives with a buffer that already matches, so it
// gets no frame.
func TestDeliverSkipsAlreadyReconciledPeers(t *testing.T) {
	room := NewRoom("s1")
	writer, writerFrames := joinPeer(room, "alice", "old")
	writer.Edit("updated", 7, func(string, models.Language, string) {})
	defer writer.Close()
	_, readerFrames := joinPeer(room, "bob", "old")

	room.Deliver(models.CodeSession{SessionID: "s1", Code: "updated"})

	if len(writerFrames.list()) != 0 {
		t.Fatalf("writer should not be echoed its own code, got %d frames", len(writerFrames.list()))
	}
	if len(readerFrames.list()) != 1 {
		t.Fatalf("reader should receive the update, got %d frames", len(readerFrames.list()))
	}
}

func TestLeaveReportsRemainingPeers(t *testing.T) {
	room := NewRoom("s1")
	a, _ := joinPeer(room, "alice", "")
	b, _ := joinPeer(room, "bob", "")

	if got := room.Leave(a); got != 1 {
		t.Fatalf("expected 1 remaining, got %d", got)
	}
	if got := room.Leave(b); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
}

func TestHubRoutesBySessionID(t *testing.T) {
	hub := NewHub()
	roomA := hub.GetOrCreate("a")
	_, aFrames := joinPeer(roomA, "alice", "old")
	roomB := hub.GetOrCreate("b")
	_, bFrames := joinPeer(roomB, "bob", "old")

	hub.Deliver(models.CodeSession{SessionID: "a", Code: "only for a"})

	if len(aFrames.list()) != 1 {
		t.Fatalf("room a expected one frame, got %d", len(aFrames.list()))
	}
	if len(bFrames.list()) != 0 {
		t.Fatalf("room b expected no frames, got %d", len(bFrames.list()))
	}
}

func TestHubGetOrCreateReturnsSameRoom(t *testing.T) {
	hub := NewHub()
	if hub.GetOrCreate("s1") != hub.GetOrCreate("s1") {
		t.Fatal("expected the same room instance")
	}
}

func TestHubDeliverUnknownSessionIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Deliver(models.CodeSession{SessionID: "ghost", Code: "x"})
}

func hubPeer(userID, code string) (*Peer, *frameCapture) {
	client := NewClient(nil)
	capture := &frameCapture{}
	client.SetSendHook(capture.hook)
	p := NewPeer(userID, client)
	p.Init(code, models.DefaultLanguage, "q")
	return p, capture
}

func TestHubLeaveReapsEmptyRoom(t *testing.T) {
	hub := NewHub()
	alice, _ := hubPeer("alice", "old")
	bob, _ := hubPeer("bob", "old")
	hub.Join("s1", alice)
	hub.Join("s1", bob)

	hub.Leave("s1", alice)
	if hub.GetOrCreate("s1").PeerCount() != 1 {
		t.Fatal("room should survive while a peer remains")
	}

	hub.Leave("s1", bob)
	carol, frames := hubPeer("carol", "old")
	room := hub.Join("s1", carol)
	if room.PeerCount() != 1 {
		t.Fatalf("rejoin after reap expected a fresh room, got %d peers", room.PeerCount())
	}

	hub.Deliver(models.CodeSession{SessionID: "s1", Code: "new"})
	if len(frames.list()) != 1 {
		t.Fatalf("peer joined after reap should be reachable, got %d frames", len(frames.list()))
	}
}

func TestHubLeaveUnknownSessionIsNoop(t *testing.T) {
	hub := NewHub()
	p, _ := hubPeer("alice", "")
	hub.Leave("ghost", p)
}
