package session

import (
	"context"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// Fanout pushes a stored record to local peers and, when a bridge is
// configured, to the other instances.
type Fanout struct {
	Hub    *Hub
	Bridge *Bridge
}

func (f *Fanout) Notify(ctx context.Context, rec models.CodeSession) {
	f.Hub.Deliver(rec)
	if f.Bridge != nil {
		f.Bridge.Publish(ctx, rec)
	}
}
