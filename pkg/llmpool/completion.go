package llmpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionRequest describes one chat completion. MaxTokens of 0 means the
// pool's configured output budget.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

func (p *Pool) chatRequest(req CompletionRequest, stream bool) openai.ChatCompletionRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.cfg.MaxOutputTokens
	}
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})
	return openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stream:      stream,
	}
}

// GetCompletion acquires a handle, issues a non-streaming chat completion and
// releases the handle. Transient backend errors are retried up to the
// configured count; pipeline stages above this layer never retry.
func (p *Pool) GetCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	h, err := p.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer p.Release(h)

	chatReq := p.chatRequest(req, false)
	attempts := p.cfg.MaxRetries + 1
	backoff := time.Second

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			p.logger.Warn("retrying LLM request", "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
		}

		resp, err := h.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return "", err
			}
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("llmpool: backend returned no choices")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("llmpool: completion failed after %d attempts: %w", attempts, lastErr)
}

// Stream is a streaming completion that owns its pool handle. The handle
// stays checked out until the stream is exhausted, errors, or is closed;
// releasing earlier would let two callers share one client mid-stream.
type Stream struct {
	inner  *openai.ChatCompletionStream
	pool   *Pool
	handle *Handle
	once   sync.Once
}

// StreamCompletion acquires a handle and opens a streaming chat completion
// on it. The caller must drain the stream or call Close.
func (p *Pool) StreamCompletion(ctx context.Context, req CompletionRequest) (*Stream, error) {
	h, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	inner, err := h.client.CreateChatCompletionStream(ctx, p.chatRequest(req, true))
	if err != nil {
		p.Release(h)
		return nil, fmt.Errorf("llmpool: failed to open stream: %w", err)
	}
	return &Stream{inner: inner, pool: p, handle: h}, nil
}

// Recv returns the next content delta. io.EOF marks normal exhaustion; any
// error, EOF included, releases the underlying handle back to the pool.
func (s *Stream) Recv() (string, error) {
	resp, err := s.inner.Recv()
	if err != nil {
		s.release()
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

// Close tears the stream down and releases its handle. Safe to call more
// than once and after exhaustion.
func (s *Stream) Close() {
	s.release()
}

func (s *Stream) release() {
	s.once.Do(func() {
		_ = s.inner.Close()
		s.pool.Release(s.handle)
	})
}
