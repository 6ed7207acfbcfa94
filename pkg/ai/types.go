package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when the model produced no usable content
var ErrEmptyResponse = errors.New("empty response from model")

// Client defines the interface for LLM interactions
type Client interface {
	// GenerateJSON returns JSON text constrained by req.Schema
	GenerateJSON(ctx context.Context, req JSONRequest) (string, error)

	// CallFunction forces the model to call req.Function exactly once.
	// A model that still declines yields a call with empty arguments.
	CallFunction(ctx context.Context, req FunctionRequest) (*FunctionCall, error)

	GetModelInfo() ModelInfo
}

// ModelInfo contains information about the LLM model
type ModelInfo struct {
	Name            string
	Provider        string
	MaxOutputTokens int
}

// Config holds configuration for LLM clients
type Config struct {
	Provider        string
	Model           string
	APIKey          string
	BaseURL         string
	MaxOutputTokens int
}

// JSONRequest asks for a structured answer
type JSONRequest struct {
	Task        string // metrics label, e.g. "feedback_summary"
	System      string
	Prompt      string
	Schema      *Schema
	Temperature float32
}

// FunctionDeclaration is a tool the model can be forced to call
type FunctionDeclaration struct {
	Name        string
	Description string
	Parameters  *Schema
}

// FunctionRequest asks the model to call one function
type FunctionRequest struct {
	Task        string
	System      string
	Prompt      string
	Function    FunctionDeclaration
	Temperature float32
}

// FunctionCall is the model's invocation of a declared function
type FunctionCall struct {
	Name string
	Args map[string]any
}

// Bool reads a boolean argument. Strings such as "true" are accepted.
func (f *FunctionCall) Bool(key string) bool {
	if f == nil {
		return false
	}
	switch v := f.Args[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// String reads a string argument, trimmed
func (f *FunctionCall) String(key string) string {
	if f == nil {
		return ""
	}
	switch v := f.Args[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Strings reads a string array argument, skipping blanks
func (f *FunctionCall) Strings(key string) []string {
	if f == nil {
		return nil
	}
	var out []string
	switch v := f.Args[key].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}
