package llmpool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Yuanjie-Su/SmartInfo-sub000/models"
)

func testConfig(baseURL string, size int) models.LLMConfig {
	return models.LLMConfig{
		BaseURL:         baseURL,
		APIKey:          "test-key",
		Model:           "test-model",
		ContextWindow:   2048,
		MaxOutputTokens: 256,
		TimeoutSeconds:  5,
		PoolSize:        size,
	}
}

func TestAcquireReleaseMutualExclusion(t *testing.T) {
	pool := New(testConfig("http://127.0.0.1:0/v1", 2), nil)
	defer pool.Close()

	ctx := context.Background()
	h1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	h2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two concurrent acquisitions returned the same handle")
	}

	// Third caller must suspend until a release.
	shortCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(shortCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded while pool exhausted, got %v", err)
	}

	done := make(chan *Handle, 1)
	go func() {
		h, err := pool.Acquire(ctx)
		if err != nil {
			t.Errorf("blocked acquire failed: %v", err)
		}
		done <- h
	}()

	time.Sleep(50 * time.Millisecond)
	pool.Release(h1)

	select {
	case h3 := <-done:
		if h3 == h2 {
			t.Fatalf("satisfied acquire returned a handle another caller still holds")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("blocked acquire was not satisfied after release")
	}
}

func TestAcquireAfterCloseFailsFast(t *testing.T) {
	pool := New(testConfig("http://127.0.0.1:0/v1", 1), nil)
	if _, err := pool.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	pool.Close()

	start := time.Now()
	_, err := pool.Acquire(context.Background())
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("acquire on closed pool did not fail fast")
	}
}

func TestConcurrentFirstAcquireInitializesOnce(t *testing.T) {
	pool := New(testConfig("http://127.0.0.1:0/v1", 3), nil)
	defer pool.Close()

	var wg sync.WaitGroup
	seen := make(chan *Handle, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := pool.Acquire(context.Background())
			if err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			seen <- h
			pool.Release(h)
		}()
	}
	wg.Wait()
	close(seen)

	distinct := make(map[*Handle]struct{})
	for h := range seen {
		distinct[h] = struct{}{}
	}
	if len(distinct) > pool.Size() {
		t.Fatalf("observed %d distinct handles, pool size is %d", len(distinct), pool.Size())
	}
}

func TestWithClientReleasesOnError(t *testing.T) {
	pool := New(testConfig("http://127.0.0.1:0/v1", 1), nil)
	defer pool.Close()

	wantErr := errors.New("stage failure")
	if err := pool.WithClient(context.Background(), func(*Handle) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("WithClient did not propagate the callback error: %v", err)
	}

	// The handle must be back in the pool.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := pool.Acquire(ctx); err != nil {
		t.Fatalf("handle was not released after WithClient error: %v", err)
	}
}

func TestGetCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hello from backend"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	pool := New(testConfig(server.URL+"/v1", 1), nil)
	defer pool.Close()

	got, err := pool.GetCompletion(context.Background(), CompletionRequest{
		System: "system prompt",
		Prompt: "user prompt",
	})
	if err != nil {
		t.Fatalf("GetCompletion failed: %v", err)
	}
	if got != "hello from backend" {
		t.Fatalf("GetCompletion = %q", got)
	}
}

func TestGetCompletionRetriesTransientErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"second try"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL+"/v1", 1)
	cfg.MaxRetries = 2
	pool := New(cfg, nil)
	defer pool.Close()

	got, err := pool.GetCompletion(context.Background(), CompletionRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("GetCompletion failed: %v", err)
	}
	if got != "second try" {
		t.Fatalf("GetCompletion = %q", got)
	}
	if calls != 2 {
		t.Fatalf("backend called %d times, want 2", calls)
	}
}

func streamBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"part one \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"part two\"},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestStreamingHandleRetention(t *testing.T) {
	server := streamBackend(t)
	defer server.Close()

	pool := New(testConfig(server.URL+"/v1", 1), nil)
	defer pool.Close()

	stream, err := pool.StreamCompletion(context.Background(), CompletionRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("StreamCompletion failed: %v", err)
	}

	// The single handle is owned by the stream, so Acquire must not succeed.
	shortCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(shortCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("handle visible to a second caller while stream open: %v", err)
	}

	if _, err := stream.Recv(); err != nil {
		t.Fatalf("first Recv failed: %v", err)
	}
	stream.Close()

	ctx, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	if _, err := pool.Acquire(ctx); err != nil {
		t.Fatalf("handle not released after stream close: %v", err)
	}
}

func TestStreamExhaustionReleasesHandle(t *testing.T) {
	server := streamBackend(t)
	defer server.Close()

	pool := New(testConfig(server.URL+"/v1", 1), nil)
	defer pool.Close()

	stream, err := pool.StreamCompletion(context.Background(), CompletionRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("StreamCompletion failed: %v", err)
	}

	var content string
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Recv failed: %v", err)
		}
		content += delta
	}
	if content != "part one part two" {
		t.Fatalf("streamed content = %q", content)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := pool.Acquire(ctx); err != nil {
		t.Fatalf("handle not released after stream exhaustion: %v", err)
	}
}
