package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Priyan1011/remote-interview-platform/internal/execution"
	"github.com/Priyan1011/remote-interview-platform/internal/metrics"
	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/questions"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
	"github.com/Priyan1011/remote-interview-platform/internal/session"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type CollabHandler struct {
	store *repositories.SessionStore
	svc   *execution.Service
	hub   *session.Hub
	fan   Notifier
	bank  *questions.Bank
	log   *zap.Logger
}

func NewCollabHandler(store *repositories.SessionStore, svc *execution.Service, hub *session.Hub, fan Notifier, bank *questions.Bank, log *zap.Logger) *CollabHandler {
	return &CollabHandler{store: store, svc: svc, hub: hub, fan: fan, bank: bank, log: log}
}

type initRequest struct {
	UserID string `json:"userId"`
}

/*** Collab WebSocket: shared editor with debounced persistence ***/

func (h *CollabHandler) CollabWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return
	}
	var init models.WSFrame
	if err := json.Unmarshal(msg, &init); err != nil || init.Type != "init" {
		_ = conn.WriteJSON(errFrame("expected init"))
		return
	}
	var initReq initRequest
	marshal(init.Data, &initReq)

	client := session.NewClient(conn)
	peer := session.NewPeer(initReq.UserID, client)
	defer peer.Close()

	// Room entry is the only point where language and question are pulled
	// from the record; mid-session they are push-only.
	code, language, questionID := h.entryState(r.Context(), sessionID)
	peer.Init(code, language, questionID)

	h.hub.Join(sessionID, peer)
	defer h.hub.Leave(sessionID, peer)

	client.Send(models.WSFrame{
		Type: "init",
		Data: models.InitResponse{
			SessionID:  sessionID,
			Code:       code,
			Language:   language,
			QuestionID: questionID,
		},
	})

	flush := h.flushFunc(sessionID, initReq.UserID)

	// Event loop
	for {
		var frame models.WSFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		switch frame.Type {
		case "edit":
			var e models.Edit
			marshal(frame.Data, &e)
			peer.Edit(e.Code, e.Cursor, flush)

		case "language":
			var lc models.LanguageChange
			marshal(frame.Data, &lc)
			if !lc.Language.Valid() {
				client.Send(errFrame("unsupported_language"))
				continue
			}
			h.switchLanguage(r.Context(), peer, sessionID, initReq.UserID, lc)

		case "question":
			var qc models.QuestionChange
			marshal(frame.Data, &qc)
			h.switchQuestion(r.Context(), peer, sessionID, initReq.UserID, qc)

		case "run":
			var run models.RunCmd
			marshal(frame.Data, &run)
			go h.runForPeer(client, sessionID, initReq.UserID, run)

		default:
			client.Send(errFrame("unknown_type"))
		}
	}
}

// entryState resolves the buffer a joining peer starts from. A missing
// record falls back to the default question's starter code without creating
// anything; the record appears on the first persisted edit.
func (h *CollabHandler) entryState(ctx context.Context, sessionID string) (string, models.Language, string) {
	rec, err := h.store.Get(ctx, sessionID)
	if err == nil {
		return rec.Code, rec.Language, rec.QuestionID
	}
	if !errors.Is(err, repositories.ErrSessionNotFound) {
		h.log.Error("failed to load session on join", zap.String("sessionId", sessionID), zap.Error(err))
	}
	q := h.bank.Default()
	return h.bank.StarterCode(q.ID, models.DefaultLanguage), models.DefaultLanguage, q.ID
}

// flushFunc is the debounced write path: persist the buffer snapshot, then
// fan the authoritative record out. The fan-out includes the writer; its
// reconcile no-ops on the echo.
func (h *CollabHandler) flushFunc(sessionID, userID string) func(code string, language models.Language, questionID string) {
	return func(code string, language models.Language, questionID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.store.UpsertCode(ctx, sessionID, code, language, questionID, userID); err != nil {
			h.log.Error("failed to persist code", zap.String("sessionId", sessionID), zap.Error(err))
			return
		}
		h.fan.Notify(ctx, models.CodeSession{
			SessionID:   sessionID,
			Code:        code,
			Language:    language,
			QuestionID:  questionID,
			LastUpdated: time.Now().UnixMilli(),
			UserID:      userID,
		})
	}
}

func (h *CollabHandler) switchLanguage(ctx context.Context, peer *session.Peer, sessionID, userID string, lc models.LanguageChange) {
	code := lc.Code
	if code == "" {
		_, _, _, questionID := peer.Snapshot()
		code = h.bank.StarterCode(questionID, lc.Language)
	}
	peer.SetLanguage(lc.Language, code)

	if err := h.store.UpsertLanguage(ctx, sessionID, lc.Language, userID); err != nil {
		h.log.Error("failed to persist language", zap.String("sessionId", sessionID), zap.Error(err))
	}
	_, _, _, questionID := peer.Snapshot()
	flush := h.flushFunc(sessionID, userID)
	flush(code, lc.Language, questionID)
}

func (h *CollabHandler) switchQuestion(ctx context.Context, peer *session.Peer, sessionID, userID string, qc models.QuestionChange) {
	code := qc.Code
	_, _, language, _ := peer.Snapshot()
	if code == "" {
		code = h.bank.StarterCode(qc.QuestionID, language)
	}
	peer.SetQuestion(qc.QuestionID, code)

	if err := h.store.UpsertQuestion(ctx, sessionID, qc.QuestionID, code, userID); err != nil {
		h.log.Error("failed to persist question", zap.String("sessionId", sessionID), zap.Error(err))
		return
	}
	h.fan.Notify(ctx, models.CodeSession{
		SessionID:   sessionID,
		Code:        code,
		Language:    language,
		QuestionID:  qc.QuestionID,
		LastUpdated: time.Now().UnixMilli(),
		UserID:      userID,
	})
}

func (h *CollabHandler) runForPeer(client *session.Client, sessionID, userID string, run models.RunCmd) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := h.svc.Run(ctx, sessionID, userID, models.ExecuteRequest{
		Code:     run.Code,
		Language: run.Language,
		Input:    run.Input,
	})
	metrics.ExecutionAttempts.WithLabelValues(string(run.Language), res.Status).Inc()
	if err != nil {
		h.log.Warn("session run did not finish", zap.String("sessionId", sessionID), zap.Error(err))
	}
	client.Send(models.WSFrame{Type: "result", Data: res})
}

func errFrame(msg string) models.WSFrame {
	return models.WSFrame{Type: "error", Data: msg}
}

func marshal(in interface{}, out interface{}) {
	b, _ := json.Marshal(in)
	_ = json.Unmarshal(b, out)
}
