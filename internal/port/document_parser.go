package port

import "context"

// ParseInput carries the data needed for document extraction.
type ParseInput struct {
	FileBytes   []byte
	ContentType string
	Prompt      string
}

// ParseOutput contains the raw structured result from an LLM parser.
type ParseOutput struct {
	RawJSON    []byte
	ModelUsed  string
	PromptUsed string
}

// DocumentParser abstracts LLM-based document extraction.
type DocumentParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
