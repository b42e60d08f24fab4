package models

type Language string

const (
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangJava       Language = "java"
)

// DefaultLanguage is used when a session record is created without an
// explicit language selection.
const DefaultLanguage = LangJavaScript

func (l Language) Valid() bool {
	switch l {
	case LangJavaScript, LangPython, LangJava:
		return true
	}
	return false
}

// Execution outcome statuses. Compile errors take precedence over the
// runtime-derived status.
const (
	StatusFinished         = "Finished"
	StatusRuntimeError     = "Runtime Error"
	StatusCompilationError = "Compilation Error"
	StatusError            = "Error"
)

// CodeSession is the shared editor state for one interview room. There is at
// most one record per sessionId; writes are unconditional overwrites
// (last network-arrival wins).
type CodeSession struct {
	SessionID   string   `bson:"sessionId" json:"sessionId"`
	Code        string   `bson:"code" json:"code"`
	Language    Language `bson:"language" json:"language"`
	QuestionID  string   `bson:"questionId" json:"questionId"`
	LastUpdated int64    `bson:"lastUpdated" json:"lastUpdated"` // unix millis, advisory only
	UserID      string   `bson:"userId" json:"userId"`           // last writer, advisory only
}

// Execution is an append-only history entry for one run attempt. Immutable
// once created.
type Execution struct {
	SessionID     string   `bson:"sessionId" json:"sessionId"`
	UserID        string   `bson:"userId" json:"userId"`
	Code          string   `bson:"code" json:"code"`
	Language      Language `bson:"language" json:"language"`
	Input         string   `bson:"input" json:"input"`
	Output        string   `bson:"output" json:"output"`
	Error         string   `bson:"error" json:"error"`
	Status        string   `bson:"status" json:"status"`
	ExecutionTime int64    `bson:"executionTime" json:"executionTime"`
	Memory        int64    `bson:"memory" json:"memory"`
	CreatedAt     int64    `bson:"createdAt" json:"createdAt"`
}

type ExecuteRequest struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
	Input    string   `json:"input,omitempty"`
}

// ExecuteResult is the fixed result contract every execution attempt is
// normalized into, regardless of what the upstream service returned.
type ExecuteResult struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error"`
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Memory  int64  `json:"memory"`
}

/*** Collaboration WebSocket frames ***/

type WSFrame struct {
	Type string      `json:"type"` // "init","edit","code","language","question","run","result","error"
	Data interface{} `json:"data"`
}

type InitResponse struct {
	SessionID  string   `json:"sessionId"`
	Code       string   `json:"code"`
	Language   Language `json:"language"`
	QuestionID string   `json:"questionId"`
}

// Edit carries the full buffer; merges are last-write-wins, not operational.
type Edit struct {
	Code   string `json:"code"`
	Cursor int    `json:"cursor"`
}

// LanguageChange switches the room language and resets the buffer to the
// question's starter code for that language.
type LanguageChange struct {
	Language Language `json:"language"`
	Code     string   `json:"code"`
}

type QuestionChange struct {
	QuestionID string `json:"questionId"`
	Code       string `json:"code"`
}

type RunCmd struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
	Input    string   `json:"input,omitempty"`
}
