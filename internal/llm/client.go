// Package llm provides the completion-service abstraction used by every
// phase that needs generated text. The concrete client speaks the OpenAI
// chat-completions wire format.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/khallinan12345/community-research-assistant/internal/domain"
)

// ChatMessage is a role-tagged message in the completion request format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest holds the parameters for one generation call. Either
// Prompt or Messages is set; a bare Prompt is sent as a single user message.
type CompletionRequest struct {
	Task        TaskType
	System      string
	Prompt      string
	Messages    []ChatMessage
	MaxTokens   *int     // nil uses task default
	Temperature *float64 // nil uses task default
	TopP        *float64 // nil uses task default
}

// CompletionResponse holds the result of one generation call.
type CompletionResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// CompletionClient provides access to a text-completion service.
type CompletionClient interface {
	// Complete sends a prompt or message list and returns the generated text.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// FromLog converts a topic session log into the wire message format.
func FromLog(log []domain.Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(log))
	for _, m := range log {
		out = append(out, ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// openAIClient implements CompletionClient against the chat-completions API.
type openAIClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a CompletionClient for the configured endpoint.
func NewClient(cfg Config, observer Observer) CompletionClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &openAIClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// chatRequest is the JSON body sent to POST /v1/chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_completion_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

// chatResponse is the subset of the response body the client reads.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	topP := taskCfg.TopP
	if req.TopP != nil {
		topP = *req.TopP
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	msgs := req.Messages
	if len(msgs) == 0 {
		msgs = []ChatMessage{{Role: "user", Content: req.Prompt}}
	}
	if req.System != "" {
		msgs = append([]ChatMessage{{Role: "system", Content: req.System}}, msgs...)
	}

	body := chatRequest{
		Model:       c.cfg.Model,
		Messages:    msgs,
		MaxTokens:   maxTok,
		Temperature: temp,
		TopP:        topP,
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			resp.LatencyMs = latency
			c.observer.OnCallComplete(CallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Success:   true,
			})
			return resp, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout.
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(ctx, lastErr),
	})

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

func (c *openAIClient) doRequest(ctx context.Context, body chatRequest) (*CompletionResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion service returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contained no choices", ErrMalformedResponse)
	}

	return &CompletionResponse{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
	}, nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNAVAILABLE"
	case errors.Is(err, ErrMalformedResponse):
		return "MALFORMED"
	default:
		return "UNKNOWN"
	}
}
