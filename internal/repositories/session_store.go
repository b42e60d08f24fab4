package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// ErrSessionNotFound is returned by record lookups when no session record
// exists for the given key.
var ErrSessionNotFound = errors.New("code session not found")

// SessionRecords is the keyed document contract the session store runs on:
// point lookup, insert, and partial patch, with an index on the session key.
type SessionRecords interface {
	FindBySession(ctx context.Context, sessionID string) (*models.CodeSession, error)
	Insert(ctx context.Context, session *models.CodeSession) error
	Patch(ctx context.Context, sessionID string, fields map[string]interface{}) error
}

// SessionStore implements the look-up-then-insert-or-patch upsert protocol
// over a session record. Writes are unconditional overwrites: there is no
// version token or merge, so the most recently applied write always wins.
type SessionStore struct {
	records SessionRecords
	now     func() int64
}

func NewSessionStore(records SessionRecords) *SessionStore {
	return &SessionStore{
		records: records,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// Get returns the current record for a session, or ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.CodeSession, error) {
	return s.records.FindBySession(ctx, sessionID)
}

// UpsertCode overwrites code, language, questionId and the writer, creating
// the record if it does not exist yet.
func (s *SessionStore) UpsertCode(ctx context.Context, sessionID, code string, language models.Language, questionID, userID string) error {
	_, err := s.records.FindBySession(ctx, sessionID)
	switch {
	case err == nil:
		return s.records.Patch(ctx, sessionID, map[string]interface{}{
			"code":        code,
			"language":    language,
			"questionId":  questionID,
			"userId":      userID,
			"lastUpdated": s.now(),
		})
	case errors.Is(err, ErrSessionNotFound):
		return s.records.Insert(ctx, &models.CodeSession{
			SessionID:   sessionID,
			Code:        code,
			Language:    language,
			QuestionID:  questionID,
			LastUpdated: s.now(),
			UserID:      userID,
		})
	default:
		return err
	}
}

// UpsertLanguage patches only the language selection. When no record exists
// yet this is a silent no-op: code always arrives first in practice, and the
// asymmetry with UpsertCode/UpsertQuestion is deliberate.
func (s *SessionStore) UpsertLanguage(ctx context.Context, sessionID string, language models.Language, userID string) error {
	_, err := s.records.FindBySession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.records.Patch(ctx, sessionID, map[string]interface{}{
		"language":    language,
		"userId":      userID,
		"lastUpdated": s.now(),
	})
}

// UpsertQuestion switches the question and resets the buffer to its starter
// code, creating the record with the default language if absent.
func (s *SessionStore) UpsertQuestion(ctx context.Context, sessionID, questionID, code, userID string) error {
	_, err := s.records.FindBySession(ctx, sessionID)
	switch {
	case err == nil:
		return s.records.Patch(ctx, sessionID, map[string]interface{}{
			"questionId":  questionID,
			"code":        code,
			"userId":      userID,
			"lastUpdated": s.now(),
		})
	case errors.Is(err, ErrSessionNotFound):
		return s.records.Insert(ctx, &models.CodeSession{
			SessionID:   sessionID,
			Code:        code,
			Language:    models.DefaultLanguage,
			QuestionID:  questionID,
			LastUpdated: s.now(),
			UserID:      userID,
		})
	default:
		return err
	}
}
