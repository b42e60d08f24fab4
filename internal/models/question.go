package models

// Question is a statically defined question bank entry. The bank is
// read-only; sessions reference entries by ID.
type Question struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Examples    []QuestionExample   `json:"examples"`
	Constraints []string            `json:"constraints,omitempty"`
	StarterCode map[Language]string `json:"starterCode"`
}

type QuestionExample struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}
