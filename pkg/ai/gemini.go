package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient talks to the Gemini API
type GeminiClient struct {
	client          *genai.Client
	model           string
	maxOutputTokens int
}

var _ Client = (*GeminiClient)(nil)

func NewGeminiClient(config Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiClient{
		client:          client,
		model:           model,
		maxOutputTokens: config.MaxOutputTokens,
	}, nil
}

func (c *GeminiClient) generativeModel(system string, temperature float32) *genai.GenerativeModel {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)
	if c.maxOutputTokens > 0 {
		model.SetMaxOutputTokens(int32(c.maxOutputTokens))
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	return model
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, req JSONRequest) (string, error) {
	model := c.generativeModel(req.System, req.Temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.Schema.ToGenai()

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	text := ExtractJSON(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *GeminiClient) CallFunction(ctx context.Context, req FunctionRequest) (*FunctionCall, error) {
	model := c.generativeModel(req.System, req.Temperature)
	model.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        req.Function.Name,
			Description: req.Function.Description,
			Parameters:  req.Function.Parameters.ToGenai(),
		}},
	}}
	model.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode:                 genai.FunctionCallingAny,
			AllowedFunctionNames: []string{req.Function.Name},
		},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	for _, candidate := range resp.Candidates {
		for _, call := range candidate.FunctionCalls() {
			if call.Name == req.Function.Name {
				args := call.Args
				if args == nil {
					args = map[string]any{}
				}
				return &FunctionCall{Name: call.Name, Args: args}, nil
			}
		}
	}
	return &FunctionCall{Name: req.Function.Name, Args: map[string]any{}}, nil
}

// GetModelInfo returns information about the Gemini model.
func (c *GeminiClient) GetModelInfo() ModelInfo {
	return ModelInfo{
		Name:            c.model,
		Provider:        "gemini",
		MaxOutputTokens: c.maxOutputTokens,
	}
}

// Close releases the underlying gRPC connection
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}
