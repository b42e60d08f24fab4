// Package memory provides in-memory implementations of the persistence
// contracts, used by tests in place of the Mongo-backed repositories.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
	"github.com/Priyan1011/remote-interview-platform/internal/repositories"
)

type SessionRecords struct {
	mu       sync.Mutex
	sessions map[string]models.CodeSession

	// BeforeWrite, when set, runs ahead of every Insert/Patch. Tests use it
	// to stall one writer and invert completion order.
	BeforeWrite func(sessionID string)
}

func NewSessionRecords() *SessionRecords {
	return &SessionRecords{sessions: make(map[string]models.CodeSession)}
}

func (m *SessionRecords) FindBySession(_ context.Context, sessionID string) (*models.CodeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return &s, nil
}

func (m *SessionRecords) Insert(_ context.Context, session *models.CodeSession) error {
	if m.BeforeWrite != nil {
		m.BeforeWrite(session.SessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.SessionID] = *session
	return nil
}

func (m *SessionRecords) Patch(_ context.Context, sessionID string, fields map[string]interface{}) error {
	if m.BeforeWrite != nil {
		m.BeforeWrite(sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	for k, v := range fields {
		switch k {
		case "code":
			s.Code = v.(string)
		case "language":
			s.Language = v.(models.Language)
		case "questionId":
			s.QuestionID = v.(string)
		case "userId":
			s.UserID = v.(string)
		case "lastUpdated":
			s.LastUpdated = v.(int64)
		}
	}
	m.sessions[sessionID] = s
	return nil
}

type ExecutionStore struct {
	mu   sync.Mutex
	recs []models.Execution
}

func NewExecutionStore() *ExecutionStore { return &ExecutionStore{} }

func (m *ExecutionStore) Insert(_ context.Context, exec *models.Execution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, *exec)
	return nil
}

func (m *ExecutionStore) RecentBySession(_ context.Context, sessionID string, limit int64) ([]models.Execution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Execution{}
	for _, r := range m.recs {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type InterviewStore struct {
	mu         sync.Mutex
	interviews map[string]models.Interview
	comments   []models.Comment
}

func NewInterviewStore() *InterviewStore {
	return &InterviewStore{interviews: make(map[string]models.Interview)}
}

func (m *InterviewStore) Create(_ context.Context, iv *models.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if iv.ID == "" {
		iv.ID = uuid.New().String()
	}
	m.interviews[iv.ID] = *iv
	return nil
}

func (m *InterviewStore) GetByID(_ context.Context, id string) (*models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.interviews[id]
	if !ok {
		return nil, repositories.ErrInterviewNotFound
	}
	return &iv, nil
}

func (m *InterviewStore) GetByStreamCallID(_ context.Context, callID string) (*models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, iv := range m.interviews {
		if iv.StreamCallID == callID {
			iv := iv
			return &iv, nil
		}
	}
	return nil, repositories.ErrInterviewNotFound
}

func (m *InterviewStore) List(_ context.Context) ([]models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(models.Interview) bool { return true }), nil
}

func (m *InterviewStore) ListByCandidate(_ context.Context, candidateID string) ([]models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(iv models.Interview) bool { return iv.CandidateID == candidateID }), nil
}

func (m *InterviewStore) ListByStatusDue(_ context.Context, status string, dueBefore int64) ([]models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(iv models.Interview) bool {
		return iv.Status == status && iv.StartTime <= dueBefore
	}), nil
}

func (m *InterviewStore) sorted(keep func(models.Interview) bool) []models.Interview {
	out := []models.Interview{}
	for _, iv := range m.interviews {
		if keep(iv) {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

func (m *InterviewStore) PatchInterview(_ context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.interviews[id]
	if !ok {
		return repositories.ErrInterviewNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			iv.Status = v.(string)
		case "endTime":
			iv.EndTime = v.(int64)
		case "result":
			iv.Result = v.(string)
		case "overallRating":
			iv.OverallRating = v.(int)
		}
	}
	m.interviews[id] = iv
	return nil
}

func (m *InterviewStore) AddComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt == 0 {
		comment.CreatedAt = time.Now().UnixMilli()
	}
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *InterviewStore) CommentsByInterview(_ context.Context, interviewID string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.InterviewID == interviewID {
			out = append(out, c)
		}
	}
	return out, nil
}
