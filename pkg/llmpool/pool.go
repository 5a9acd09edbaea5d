// Package llmpool provides a bounded pool of OpenAI-compatible chat clients.
// LLM backends rate-limit by connection and key, and a streaming client
// cannot be shared mid-stream, so every request must exclusively own one
// handle for its full lifetime. The pool enforces that bound: callers beyond
// the configured size suspend in Acquire until a handle is released.
package llmpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
)

// ErrClosed is returned by Acquire after the pool has been closed.
var ErrClosed = errors.New("llmpool: pool closed")

// Handle is one LLM client connection, owned by at most one caller at a time.
type Handle struct {
	id         int
	client     *openai.Client
	httpClient *http.Client
}

func newHandle(id int, cfg models.LLMConfig) (*Handle, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout()}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = httpClient

	return &Handle{
		id:         id,
		client:     openai.NewClientWithConfig(clientConfig),
		httpClient: httpClient,
	}, nil
}

func (h *Handle) close() {
	h.httpClient.CloseIdleConnections()
}

// Pool is a fixed-size set of handles. Construction is cheap: no handle is
// built until the first Acquire.
type Pool struct {
	cfg    models.LLMConfig
	logger *slog.Logger

	mu          sync.Mutex
	initialized bool
	closed      bool

	handles chan *Handle
	done    chan struct{}
}

// New creates a pool for the given backend configuration. PoolSize values
// below 1 are clamped to 1.
func New(cfg models.LLMConfig, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PoolSize < 1 {
		cfg.PoolSize = 1
	}
	return &Pool{
		cfg:     cfg,
		logger:  logger,
		handles: make(chan *Handle, cfg.PoolSize),
		done:    make(chan struct{}),
	}
}

// Size returns the fixed pool size.
func (p *Pool) Size() int { return p.cfg.PoolSize }

// ContextWindow returns the backend's configured context window in tokens.
func (p *Pool) ContextWindow() int { return p.cfg.ContextWindow }

// MaxOutputTokens returns the configured per-request output budget.
func (p *Pool) MaxOutputTokens() int { return p.cfg.MaxOutputTokens }

// Model returns the configured model name.
func (p *Pool) Model() string { return p.cfg.Model }

// ensureInit builds every handle exactly once, under the mutex so concurrent
// first callers cannot double-initialize. A partial failure closes the
// handles built so far and leaves the pool uninitialized for a later retry.
func (p *Pool) ensureInit() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.initialized {
		return nil
	}

	created := make([]*Handle, 0, p.cfg.PoolSize)
	for i := 1; i <= p.cfg.PoolSize; i++ {
		h, err := newHandle(i, p.cfg)
		if err != nil {
			for _, built := range created {
				built.close()
			}
			return fmt.Errorf("llmpool: initialization failed: %w", err)
		}
		created = append(created, h)
	}
	for _, h := range created {
		p.handles <- h
	}
	p.initialized = true
	p.logger.Debug("LLM client pool initialized", "size", p.cfg.PoolSize, "model", p.cfg.Model)
	return nil
}

// Acquire blocks until a handle is available or ctx is done. The first call
// triggers pool initialization.
func (p *Pool) Acquire(ctx context.Context) (*Handle, error) {
	if err := p.ensureInit(); err != nil {
		return nil, err
	}
	select {
	case <-p.done:
		return nil, ErrClosed
	case h := <-p.handles:
		return h, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a handle to the available set. After Close, the handle is
// closed individually instead of queued.
func (p *Pool) Release(h *Handle) {
	if h == nil {
		return
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		h.close()
		return
	}
	select {
	case p.handles <- h:
	default:
		// Double release; drop the handle rather than corrupt the set.
		h.close()
	}
}

// WithClient runs fn with an exclusively owned handle, releasing it on every
// exit path.
func (p *Pool) WithClient(ctx context.Context, fn func(h *Handle) error) error {
	h, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(h)
	return fn(h)
}

// Close tears the pool down. Queued handles are drained and closed;
// handles checked out at this moment are closed by their Release. Later
// Acquire calls fail fast with ErrClosed.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	initialized := p.initialized
	p.mu.Unlock()

	close(p.done)
	if !initialized {
		return
	}
	for {
		select {
		case h := <-p.handles:
			h.close()
		default:
			return
		}
	}
}
