package ai

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/johnquangdev/meeting-facilitator/pkg/jobcontext"
)

// Observer is told about every attempt made by a RetryingClient
type Observer func(provider, task string, took time.Duration, err error)

// RetryingClient bounds each call with a timeout and retries transient failures
type RetryingClient struct {
	next            Client
	maxRetries      int
	timeout         time.Duration
	initialInterval time.Duration
	observe         Observer
}

var _ Client = (*RetryingClient)(nil)

func NewRetryingClient(next Client, maxRetries int, timeout time.Duration, observe Observer) *RetryingClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingClient{
		next:            next,
		maxRetries:      maxRetries,
		timeout:         timeout,
		initialInterval: 500 * time.Millisecond,
		observe:         observe,
	}
}

func (c *RetryingClient) GenerateJSON(ctx context.Context, req JSONRequest) (string, error) {
	var out string
	err := c.retry(ctx, req.Task, func(ctx context.Context) error {
		var err error
		out, err = c.next.GenerateJSON(ctx, req)
		return err
	})
	return out, err
}

func (c *RetryingClient) CallFunction(ctx context.Context, req FunctionRequest) (*FunctionCall, error) {
	var out *FunctionCall
	err := c.retry(ctx, req.Task, func(ctx context.Context) error {
		var err error
		out, err = c.next.CallFunction(ctx, req)
		return err
	})
	return out, err
}

func (c *RetryingClient) GetModelInfo() ModelInfo {
	return c.next.GetModelInfo()
}

func (c *RetryingClient) retry(ctx context.Context, task string, fn func(context.Context) error) error {
	provider := c.next.GetModelInfo().Provider

	operation := func() error {
		attemptCtx := ctx
		cancel := func() {}
		if c.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}
		defer cancel()

		start := time.Now()
		err := fn(attemptCtx)
		if c.observe != nil {
			c.observe(provider, task, time.Since(start), err)
		}
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 0

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxRetries)), ctx))
}
