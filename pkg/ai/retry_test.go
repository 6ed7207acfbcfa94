package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyClient struct {
	failures []error
	calls    int
}

func (f *flakyClient) GenerateJSON(ctx context.Context, req JSONRequest) (string, error) {
	f.calls++
	if f.calls <= len(f.failures) {
		return "", f.failures[f.calls-1]
	}
	return `{"ok":true}`, nil
}

func (f *flakyClient) CallFunction(ctx context.Context, req FunctionRequest) (*FunctionCall, error) {
	f.calls++
	if f.calls <= len(f.failures) {
		return nil, f.failures[f.calls-1]
	}
	return &FunctionCall{Name: req.Function.Name, Args: map[string]any{}}, nil
}

func (f *flakyClient) GetModelInfo() ModelInfo {
	return ModelInfo{Name: "fake", Provider: "fake"}
}

func fastRetrying(next Client, maxRetries int, observe Observer) *RetryingClient {
	c := NewRetryingClient(next, maxRetries, time.Second, observe)
	c.initialInterval = time.Millisecond
	return c
}

func TestRetryingClient_RetriesTransientErrors(t *testing.T) {
	next := &flakyClient{failures: []error{
		errors.New("503 service unavailable"),
		errors.New("429 rate limit exceeded"),
	}}

	var observed []error
	client := fastRetrying(next, 3, func(provider, task string, _ time.Duration, err error) {
		assert.Equal(t, "fake", provider)
		assert.Equal(t, "summary", task)
		observed = append(observed, err)
	})

	out, err := client.GenerateJSON(context.Background(), JSONRequest{Task: "summary"})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, 3, next.calls)
	require.Len(t, observed, 3)
	assert.NoError(t, observed[2])
}

func TestRetryingClient_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("invalid api key")
	next := &flakyClient{failures: []error{permanent, permanent}}

	_, err := fastRetrying(next, 3, nil).CallFunction(context.Background(), FunctionRequest{})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, next.calls)
}

func TestRetryingClient_GivesUpAfterMaxRetries(t *testing.T) {
	transient := errors.New("connection reset by peer")
	next := &flakyClient{failures: []error{transient, transient, transient, transient}}

	_, err := fastRetrying(next, 2, nil).GenerateJSON(context.Background(), JSONRequest{})
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 3, next.calls)
}
