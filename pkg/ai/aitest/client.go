// Package aitest provides a scripted ai.Client for tests.
package aitest

import (
	"context"
	"fmt"
	"sync"

	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
)

// Responder computes the arguments of a function call from its request
type Responder func(req ai.FunctionRequest) (map[string]any, error)

// Client answers from canned responses keyed by task or function name
type Client struct {
	mu         sync.Mutex
	json       map[string]string
	jsonErr    map[string]error
	calls      map[string]map[string]any
	callErr    map[string]error
	responders map[string]Responder
	prompts    map[string]string
	counts     map[string]int
}

var _ ai.Client = (*Client)(nil)

func New() *Client {
	return &Client{
		json:       make(map[string]string),
		jsonErr:    make(map[string]error),
		calls:      make(map[string]map[string]any),
		callErr:    make(map[string]error),
		responders: make(map[string]Responder),
		prompts:    make(map[string]string),
		counts:     make(map[string]int),
	}
}

// OnJSON scripts the JSON returned for task
func (c *Client) OnJSON(task, response string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.json[task] = response
	return c
}

// FailJSON makes task fail with err
func (c *Client) FailJSON(task string, err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jsonErr[task] = err
	return c
}

// OnCall scripts the arguments returned for function name
func (c *Client) OnCall(name string, args map[string]any) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[name] = args
	return c
}

// FailCall makes function name fail with err
func (c *Client) FailCall(name string, err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callErr[name] = err
	return c
}

// HandleCall answers function name with respond. Responders run outside the
// client lock so concurrent callers can overlap.
func (c *Client) HandleCall(name string, respond Responder) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responders[name] = respond
	return c
}

// Count returns how often task or function name was requested
func (c *Client) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Total returns the number of requests made
func (c *Client) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Prompt returns the last prompt sent for task or function name
func (c *Client) Prompt(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prompts[name]
}

func (c *Client) GenerateJSON(_ context.Context, req ai.JSONRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[req.Task]++
	c.prompts[req.Task] = req.Prompt
	if err, ok := c.jsonErr[req.Task]; ok {
		return "", err
	}
	if resp, ok := c.json[req.Task]; ok {
		return resp, nil
	}
	return "", fmt.Errorf("no scripted response for %q", req.Task)
}

func (c *Client) CallFunction(_ context.Context, req ai.FunctionRequest) (*ai.FunctionCall, error) {
	name := req.Function.Name

	c.mu.Lock()
	c.counts[name]++
	c.prompts[name] = req.Prompt
	if err, ok := c.callErr[name]; ok {
		c.mu.Unlock()
		return nil, err
	}
	respond := c.responders[name]
	args := map[string]any{}
	for k, v := range c.calls[name] {
		args[k] = v
	}
	c.mu.Unlock()

	if respond != nil {
		var err error
		if args, err = respond(req); err != nil {
			return nil, err
		}
	}
	return &ai.FunctionCall{Name: name, Args: args}, nil
}

func (c *Client) GetModelInfo() ai.ModelInfo {
	return ai.ModelInfo{Name: "scripted", Provider: "test"}
}
