package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to OpenAI or any OpenAI-compatible endpoint such as Groq
type OpenAIClient struct {
	client          *openai.Client
	provider        string
	model           string
	maxOutputTokens int
}

var _ Client = (*OpenAIClient)(nil)

func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", config.Provider)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	provider := config.Provider
	if provider == "" {
		provider = "openai"
	}

	return &OpenAIClient{
		client:          openai.NewClientWithConfig(clientConfig),
		provider:        provider,
		model:           model,
		maxOutputTokens: config.MaxOutputTokens,
	}, nil
}

func (c *OpenAIClient) messages(system, prompt string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
}

func (c *OpenAIClient) GenerateJSON(ctx context.Context, req JSONRequest) (string, error) {
	system := req.System
	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   schemaName(req.Task),
			Schema: req.Schema.ToJSONSchema(),
			Strict: false,
		},
	}
	// Groq only guarantees json_object mode, so the schema goes into the prompt.
	if c.provider == "groq" {
		schema, err := json.Marshal(req.Schema.ToJSONSchema())
		if err != nil {
			return "", fmt.Errorf("failed to encode schema: %w", err)
		}
		system = fmt.Sprintf("%s\n\nRespond with a single JSON object matching this JSON schema:\n%s", system, schema)
		format = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:          c.model,
		Messages:       c.messages(system, req.Prompt),
		MaxTokens:      c.maxOutputTokens,
		Temperature:    req.Temperature,
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	text := ExtractJSON(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *OpenAIClient) CallFunction(ctx context.Context, req FunctionRequest) (*FunctionCall, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    c.messages(req.System, req.Prompt),
		MaxTokens:   c.maxOutputTokens,
		Temperature: req.Temperature,
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        req.Function.Name,
				Description: req.Function.Description,
				Parameters:  req.Function.Parameters.ToJSONSchema(),
			},
		}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: req.Function.Name},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", c.provider, err)
	}

	call := &FunctionCall{Name: req.Function.Name, Args: map[string]any{}}
	if len(resp.Choices) == 0 {
		return call, nil
	}
	for _, tc := range resp.Choices[0].Message.ToolCalls {
		if tc.Function.Name != req.Function.Name {
			continue
		}
		if strings.TrimSpace(tc.Function.Arguments) == "" {
			return call, nil
		}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &call.Args); err != nil {
			return nil, fmt.Errorf("invalid function arguments: %w", err)
		}
		return call, nil
	}
	return call, nil
}

func (c *OpenAIClient) GetModelInfo() ModelInfo {
	return ModelInfo{
		Name:            c.model,
		Provider:        c.provider,
		MaxOutputTokens: c.maxOutputTokens,
	}
}

func schemaName(task string) string {
	if task == "" {
		return "response"
	}
	return task
}
