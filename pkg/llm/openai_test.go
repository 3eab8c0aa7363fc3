package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func sseServer(t *testing.T, events []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, event := range events {
			fmt.Fprintf(w, "data: %s\n\n", event)
		}
	}))
}

func newTestClient(endpoint string) *StreamClient {
	return NewStreamClient(Config{APIKey: "test-key", Model: "gpt-4o-mini", Endpoint: endpoint})
}

func collect() (func(string), *[]string) {
	var collected []string
	return func(s string) { collected = append(collected, s) }, &collected
}

func TestStreamClient_Generate(t *testing.T) {
	srv := sseServer(t, []string{
		`{"type":"response.output_text.delta","delta":"Hello"}`,
		`{"type":"response.output_text.delta","delta":{"text":", "}}`,
		`{"type":"response.output_text.delta","text":"world"}`,
		`{"type":"response.completed"}`,
		`[DONE]`,
	})
	defer srv.Close()

	onStatus, statuses := collect()
	onDelta, deltas := collect()

	text, err := newTestClient(srv.URL).Generate(context.Background(), "prompt", onStatus, onDelta)

	assert.Equal(t, nil, err)
	assert.Equal(t, "Hello, world", text)
	assert.Equal(t, []string{"Hello", ", ", "world"}, *deltas)
	assert.Equal(t, []string{"Connecting to model...", "Streaming response..."}, *statuses)
}

func TestStreamClient_ErrorEvent(t *testing.T) {
	srv := sseServer(t, []string{
		`{"type":"response.output_text.delta","delta":"partial"}`,
		`{"type":"response.error","error":{"message":"model overloaded"}}`,
	})
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "prompt", func(string) {}, func(string) {})

	var genErr *GenerationError
	assert.Equal(t, true, errors.As(err, &genErr))
	assert.Equal(t, KindAPI, genErr.Kind)
	assert.Equal(t, "model overloaded", genErr.Message)
}

func TestStreamClient_HTTPErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key","code":"invalid_api_key"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "prompt", func(string) {}, func(string) {})

	var genErr *GenerationError
	assert.Equal(t, true, errors.As(err, &genErr))
	assert.Equal(t, KindAPI, genErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, genErr.Status)
	assert.Equal(t, "invalid_api_key", genErr.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStreamClient_EmptyStreamFallsBackToNonStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req responsesRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}
		fmt.Fprint(w, `{"output_text":"full document"}`)
	}))
	defer srv.Close()

	onStatus, statuses := collect()

	text, err := newTestClient(srv.URL).Generate(context.Background(), "prompt", onStatus, func(string) {})

	assert.Equal(t, nil, err)
	assert.Equal(t, "full document", text)
	assert.Equal(t, true, contains(*statuses, "No stream data, retrying without streaming..."))
}

func TestStreamClient_FallbackParsesOutputBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req responsesRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}
		fmt.Fprint(w, `{"output":[{"content":[{"text":"part one "},{"text":"part two"}]}]}`)
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Generate(context.Background(), "prompt", func(string) {}, func(string) {})

	assert.Equal(t, nil, err)
	assert.Equal(t, "part one part two", text)
}

func TestStreamClient_RetriesOnceOnTimeout(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			time.Sleep(300 * time.Millisecond)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"type\":\"response.output_text.delta\",\"delta\":\"recovered\"}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	client.client.Timeout = 100 * time.Millisecond

	onStatus, statuses := collect()
	text, err := client.Generate(context.Background(), "prompt", onStatus, func(string) {})

	assert.Equal(t, nil, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, true, contains(*statuses, "Timeout hit, retrying..."))
}

func TestTemperatureForModel(t *testing.T) {
	if temperatureForModel("gpt-5-mini") != nil {
		t.Fatal("expected nil temperature for gpt-5 models")
	}
	temp := temperatureForModel("gpt-4o-mini")
	assert.NotEqual(t, temp, nil)
	assert.Equal(t, 0.4, *temp)
}

func TestNewGenerator(t *testing.T) {
	cfg := Config{APIKey: "k", Model: "m"}

	gen, err := NewGenerator("", cfg)
	assert.Equal(t, nil, err)
	_, ok := gen.(*StreamClient)
	assert.Equal(t, true, ok)

	gen, err = NewGenerator("openai-chat", cfg)
	assert.Equal(t, nil, err)
	_, ok = gen.(*ChatClient)
	assert.Equal(t, true, ok)

	gen, err = NewGenerator("anthropic", cfg)
	assert.Equal(t, nil, err)
	_, ok = gen.(*AnthropicClient)
	assert.Equal(t, true, ok)

	_, err = NewGenerator("bogus", cfg)
	assert.NotEqual(t, err, nil)
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
