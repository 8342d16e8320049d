package generation

import "context"

// Provider sends one completion request to a text-generation backend. Implementations
// return the raw completion text; shape validation happens in Generator.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	// Operation names the caller-level action, e.g. "generate_quiz". Used for logs and metrics.
	Operation string
	System    string
	Messages  []Message
	// Schema, when set, asks the provider for JSON matching the definition.
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content string
	Model   string
	Usage   Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
