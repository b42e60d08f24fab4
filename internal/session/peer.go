package session

import (
	"time"

	"sync"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

// DebounceWindow bounds write amplification during continuous typing:
// edits within the window collapse into a single store write.
const DebounceWindow = 500 * time.Millisecond

// Peer mirrors one participant's editor buffer on this instance. Code is
// bidirectionally synced; language and question selection are push-only from
// the local participant and read from the record only on room entry, so a
// remote snapshot can never stomp a just-made local selection.
type Peer struct {
	UserID string
	Client *Client

	mu         sync.Mutex
	code       string
	cursor     int
	language   models.Language
	questionID string
	debouncer  *Debouncer
}

func NewPeer(userID string, client *Client) *Peer {
	return &Peer{
		UserID:    userID,
		Client:    client,
		language:  models.DefaultLanguage,
		debouncer: NewDebouncer(DebounceWindow),
	}
}

// Init applies a full record on room entry. This is the only point where
// language and question are pulled from remote state.
func (p *Peer) Init(code string, language models.Language, questionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.code = code
	if language.Valid() {
		p.language = language
	}
	p.questionID = questionID
}

// Edit applies a local keystroke immediately and schedules the debounced
// store write. The flush callback sees the buffer as of timer expiry, not as
// of the edit that armed it.
func (p *Peer) Edit(code string, cursor int, flush func(code string, language models.Language, questionID string)) {
	p.mu.Lock()
	p.code = code
	p.cursor = cursor
	p.mu.Unlock()

	p.debouncer.Trigger(func() {
		p.mu.Lock()
		c, lang, qid := p.code, p.language, p.questionID
		p.mu.Unlock()
		flush(c, lang, qid)
	})
}

// SetLanguage records a local language switch with its starter code.
func (p *Peer) SetLanguage(language models.Language, code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.language = language
	p.code = code
	p.cursor = 0
}

// SetQuestion records a local question switch with its starter code.
func (p *Peer) SetQuestion(questionID, code string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questionID = questionID
	p.code = code
	p.cursor = 0
}

// Reconcile folds a remote record update into the local buffer. Only the
// code field is applied. An identical buffer is a no-op, and an empty
// incoming code never overwrites a non-empty draft (stale-empty guard for
// freshly created rooms). The cursor is restored at its previous offset
// clamped to the new length; this is a heuristic, not a guarantee.
func (p *Peer) Reconcile(rec models.CodeSession) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if rec.Code == p.code {
		return false
	}
	if rec.Code == "" && p.code != "" {
		return false
	}
	p.code = rec.Code
	if p.cursor > len(rec.Code) {
		p.cursor = len(rec.Code)
	}
	return true
}

// Snapshot returns the current buffer state.
func (p *Peer) Snapshot() (code string, cursor int, language models.Language, questionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code, p.cursor, p.language, p.questionID
}

// Close cancels any pending debounced write.
func (p *Peer) Close() { p.debouncer.Stop() }
