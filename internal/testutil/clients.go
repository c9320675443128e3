// Package testutil provides scripted fakes for the external collaborators so
// service and session tests run without network access.
package testutil

import (
	"context"
	"sync"

	"github.com/khallinan12345/community-research-assistant/internal/llm"
	"github.com/khallinan12345/community-research-assistant/internal/search"
)

// ScriptedCompletionClient returns queued replies in order. When the queue is
// exhausted it returns Err, or llm.ErrGenerationFailed if Err is nil. All
// requests are recorded for assertion.
type ScriptedCompletionClient struct {
	mu      sync.Mutex
	Replies []string
	Err     error
	Calls   []llm.CompletionRequest
}

func (c *ScriptedCompletionClient) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls = append(c.Calls, req)
	if len(c.Replies) == 0 {
		if c.Err != nil {
			return nil, c.Err
		}
		return nil, llm.ErrGenerationFailed
	}
	reply := c.Replies[0]
	c.Replies = c.Replies[1:]
	return &llm.CompletionResponse{Text: reply, Model: "scripted"}, nil
}

// CallCount returns how many completion requests the fake has served.
func (c *ScriptedCompletionClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}

// LastCall returns the most recent request, or a zero request if none.
func (c *ScriptedCompletionClient) LastCall() llm.CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Calls) == 0 {
		return llm.CompletionRequest{}
	}
	return c.Calls[len(c.Calls)-1]
}

// FailingCompletionClient always fails with the given error.
type FailingCompletionClient struct {
	Err error
}

func (c *FailingCompletionClient) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return nil, llm.ErrGenerationFailed
}

// ScriptedSearchClient returns fixed results, or Err when set. Each query
// reports the village tier through OnTier before returning.
type ScriptedSearchClient struct {
	mu      sync.Mutex
	Results []search.Result
	Err     error
	Queries []search.Query
}

func (c *ScriptedSearchClient) Search(_ context.Context, q search.Query) ([]search.Result, error) {
	c.mu.Lock()
	c.Queries = append(c.Queries, q)
	c.mu.Unlock()

	if q.OnTier != nil {
		q.OnTier(search.TierVillage)
	}
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Results, nil
}
