// Package piston proxies code submissions to a Piston-compatible execution
// service and normalizes its response into the fixed result contract.
package piston

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

const DefaultBaseURL = "https://emkc.org/api/v2/piston"

// The remote service enforces these per-stage ceilings; -1 leaves memory
// unlimited.
const (
	compileTimeoutMs = 10000
	runTimeoutMs     = 10000
	memoryUnlimited  = -1
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrUpstream marks transport-level failures talking to the execution
	// service. The returned result is still normalized.
	ErrUpstream = errors.New("execution service unavailable")
)

type runtimeSpec struct {
	Language string
	Version  string
	FileName string
}

var runtimes = map[models.Language]runtimeSpec{
	models.LangJavaScript: {Language: "javascript", Version: "18.15.0", FileName: "script.js"},
	models.LangPython:     {Language: "python", Version: "3.10.0", FileName: "script.py"},
	models.LangJava:       {Language: "java", Version: "15.0.2", FileName: "Main.java"},
}

type executeRequest struct {
	Language           string        `json:"language"`
	Version            string        `json:"version"`
	Files              []executeFile `json:"files"`
	Stdin              string        `json:"stdin"`
	Args               []string      `json:"args"`
	CompileTimeout     int           `json:"compile_timeout"`
	RunTimeout         int           `json:"run_timeout"`
	CompileMemoryLimit int           `json:"compile_memory_limit"`
	RunMemoryLimit     int           `json:"run_memory_limit"`
}

type executeFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// stage mirrors Piston's run/compile blocks. Every field is optional
// upstream, so defaults must stay explicit here.
type stage struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Output string `json:"output"`
	Code   *int   `json:"code"`
	Memory int64  `json:"memory"`
}

type executeResponse struct {
	Run     *stage `json:"run"`
	Compile *stage `json:"compile"`
	Message string `json:"message"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a gateway client. The HTTP client carries its own timeout
// so a hung upstream cannot block a run indefinitely.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Execute submits code for remote execution and returns a normalized result.
// The error return classifies the failure (unsupported language, upstream
// fault) for HTTP status mapping; the result is always usable as a response
// body. No raw fault ever escapes un-normalized.
func (c *Client) Execute(ctx context.Context, req models.ExecuteRequest) (models.ExecuteResult, error) {
	rt, ok := runtimes[req.Language]
	if !ok {
		return models.ExecuteResult{
			Success: false,
			Output:  "",
			Error:   fmt.Sprintf("Unsupported language: %s", req.Language),
			Status:  models.StatusError,
			Memory:  0,
		}, ErrUnsupportedLanguage
	}

	payload := executeRequest{
		Language:           rt.Language,
		Version:            rt.Version,
		Files:              []executeFile{{Name: rt.FileName, Content: req.Code}},
		Stdin:              req.Input,
		Args:               []string{},
		CompileTimeout:     compileTimeoutMs,
		RunTimeout:         runTimeoutMs,
		CompileMemoryLimit: memoryUnlimited,
		RunMemoryLimit:     memoryUnlimited,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errorResult(err.Error()), fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return errorResult(err.Error()), fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return errorResult("Failed to execute code"), fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("API request failed: %s", resp.Status)
		return errorResult(msg), fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}

	var data executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return errorResult("Failed to execute code"), fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return normalize(data), nil
}

// normalize maps the service's variable response shape onto the fixed
// contract. Missing run/compile blocks are absent-but-not-fatal.
func normalize(data executeResponse) models.ExecuteResult {
	res := models.ExecuteResult{Status: models.StatusError}

	switch {
	case data.Run != nil:
		exitZero := data.Run.Code != nil && *data.Run.Code == 0
		res.Output = data.Run.Stdout
		if res.Output == "" {
			res.Output = data.Run.Output
		}
		res.Error = data.Run.Stderr
		res.Success = data.Run.Stderr == "" && exitZero
		if exitZero {
			res.Status = models.StatusFinished
		} else {
			res.Status = models.StatusRuntimeError
		}
		res.Memory = data.Run.Memory
	case data.Message != "":
		res.Error = data.Message
	default:
		res.Error = "Unexpected response format from execution service"
	}

	// Compile errors take precedence over the runtime-derived status. The
	// error text still prefers run stderr when both stages produced output.
	if data.Compile != nil && data.Compile.Stderr != "" {
		if res.Error == "" {
			res.Error = data.Compile.Stderr
		}
		res.Status = models.StatusCompilationError
	}
	return res
}

func errorResult(msg string) models.ExecuteResult {
	return models.ExecuteResult{
		Success: false,
		Output:  "",
		Error:   msg,
		Status:  models.StatusError,
		Memory:  0,
	}
}
