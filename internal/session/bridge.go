package session

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

const sessionUpdatesChannel = "session_updates"

type updateEnvelope struct {
	Origin string             `json:"origin"`
	Record models.CodeSession `json:"record"`
}

// Bridge fans session record updates out across instances over redis
// pub/sub. Local delivery happens directly through the hub; the bridge skips
// messages it published itself.
type Bridge struct {
	rdb        *redis.Client
	hub        *Hub
	log        *zap.Logger
	instanceID string
}

func NewBridge(rdb *redis.Client, hub *Hub, log *zap.Logger) *Bridge {
	return &Bridge{
		rdb:        rdb,
		hub:        hub,
		log:        log,
		instanceID: uuid.New().String()[:8],
	}
}

// Publish pushes a record update to peers on other instances. Failures are
// logged, not surfaced: the local room has already been updated and the
// store remains the source of truth for late joiners.
func (b *Bridge) Publish(ctx context.Context, rec models.CodeSession) {
	payload, err := json.Marshal(updateEnvelope{Origin: b.instanceID, Record: rec})
	if err != nil {
		b.log.Error("failed to marshal session update", zap.Error(err))
		return
	}
	if err := b.rdb.Publish(ctx, sessionUpdatesChannel, payload).Err(); err != nil {
		b.log.Warn("failed to publish session update", zap.String("sessionId", rec.SessionID), zap.Error(err))
	}
}

// Subscribe consumes session updates published by other instances and
// delivers them to local rooms. Blocks until the context is cancelled.
func (b *Bridge) Subscribe(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, sessionUpdatesChannel)
	defer sub.Close()
	ch := sub.Channel()

	b.log.Info("session bridge subscribed", zap.String("channel", sessionUpdatesChannel), zap.String("instance", b.instanceID))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env updateEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.log.Warn("failed to parse session update", zap.Error(err))
				continue
			}
			if env.Origin == b.instanceID {
				continue
			}
			b.hub.Deliver(env.Record)
		}
	}
}
