package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

const retryBackoff = 900 * time.Millisecond

type responsesRequest struct {
	Model       string             `json:"model"`
	Input       []responsesMessage `json:"input"`
	Temperature *float64           `json:"temperature,omitempty"`
	Stream      bool               `json:"stream"`
}

type responsesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// StreamClient speaks the Responses API directly: it streams server-sent
// events, assembles the output text, and falls back to a non-streaming
// request when a provider silently produces an empty stream.
type StreamClient struct {
	config Config
	client *http.Client
}

func NewStreamClient(cfg Config) *StreamClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &StreamClient{
		config: cfg,
		// The timeout bounds the whole exchange, headers and body both, so a
		// stalled stream is cut off and classified as a timeout.
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Generate runs the request with exactly one automatic retry for
// timeout-classified failures. Cancellations and provider errors are not
// retried.
func (c *StreamClient) Generate(ctx context.Context, prompt string, onStatus func(string), onDelta func(string)) (string, error) {
	if _, err := url.ParseRequestURI(c.config.Endpoint); err != nil {
		return "", &GenerationError{Kind: KindConfig, Message: "The AI endpoint is invalid.", Err: err}
	}

	const maxAttempts = 2
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		onStatus("Connecting to model...")
		text, err := c.stream(ctx, prompt, onStatus, onDelta)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt < maxAttempts && IsTimeout(err) && ctx.Err() == nil {
			onStatus("Timeout hit, retrying...")
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			continue
		}
		break
	}
	return "", lastErr
}

func (c *StreamClient) newRequest(ctx context.Context, prompt string, stream bool) (*http.Request, error) {
	body := responsesRequest{
		Model: c.config.Model,
		Input: []responsesMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperatureForModel(c.config.Model),
		Stream:      stream,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	return req, nil
}

func (c *StreamClient) stream(ctx context.Context, prompt string, onStatus func(string), onDelta func(string)) (string, error) {
	req, err := c.newRequest(ctx, prompt, true)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if IsTimeout(err) {
			return "", &GenerationError{Kind: KindTimeout, Err: err}
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", responseError(resp)
	}

	onStatus("Streaming response...")

	var assembled strings.Builder
	decoder := ssestream.NewDecoder(resp)
	for decoder.Next() {
		event := decoder.Event()
		payload := strings.TrimSpace(string(event.Data))
		if payload == "" || payload == "[DONE]" {
			if payload == "[DONE]" {
				break
			}
			continue
		}
		delta, done, errMessage := parseStreamPayload([]byte(payload))
		if errMessage != "" {
			return "", &GenerationError{Kind: KindAPI, Message: errMessage}
		}
		if delta != "" {
			assembled.WriteString(delta)
			onDelta(delta)
		}
		if done {
			break
		}
	}
	if err := decoder.Err(); err != nil {
		if IsTimeout(err) {
			return "", &GenerationError{Kind: KindTimeout, Err: err}
		}
		return "", err
	}

	if strings.TrimSpace(assembled.String()) == "" {
		onStatus("No stream data, retrying without streaming...")
		text, err := c.nonStreaming(ctx, prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", &GenerationError{Kind: KindEmpty}
		}
		return text, nil
	}
	return assembled.String(), nil
}

// parseStreamPayload pulls text out of one SSE payload. A delta may arrive as
// a bare string, as a nested {text} object, or as a top-level text field;
// providers disagree, so all three shapes are checked in that order.
func parseStreamPayload(data []byte) (delta string, done bool, errMessage string) {
	var payload struct {
		Type  string          `json:"type"`
		Delta json.RawMessage `json:"delta"`
		Text  string          `json:"text"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false, ""
	}

	switch payload.Type {
	case "response.output_text.delta":
		if len(payload.Delta) > 0 {
			var text string
			if err := json.Unmarshal(payload.Delta, &text); err == nil {
				return text, false, ""
			}
			var nested struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(payload.Delta, &nested); err == nil && nested.Text != "" {
				return nested.Text, false, ""
			}
		}
		return payload.Text, false, ""
	case "response.completed":
		return "", true, ""
	case "response.error":
		if payload.Error != nil && payload.Error.Message != "" {
			return "", false, payload.Error.Message
		}
		return "", false, "AI stream error."
	}
	return "", false, ""
}

func (c *StreamClient) nonStreaming(ctx context.Context, prompt string) (string, error) {
	req, err := c.newRequest(ctx, prompt, false)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if IsTimeout(err) {
			return "", &GenerationError{Kind: KindTimeout, Err: err}
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", responseError(resp)
	}

	var document struct {
		OutputText string `json:"output_text"`
		Output     []struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&document); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if document.OutputText != "" {
		return document.OutputText, nil
	}
	var segments strings.Builder
	for _, item := range document.Output {
		for _, block := range item.Content {
			segments.WriteString(block.Text)
		}
	}
	return segments.String(), nil
}

func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &GenerationError{
			Kind:    KindAPI,
			Message: apiErr.Error.Message,
			Code:    apiErr.Error.Code,
			Status:  resp.StatusCode,
		}
	}
	return &GenerationError{
		Kind:    KindHTTP,
		Message: strings.TrimSpace(string(body)),
		Status:  resp.StatusCode,
	}
}

// Reasoning models reject explicit sampling temperature.
func temperatureForModel(model string) *float64 {
	trimmed := strings.ToLower(strings.TrimSpace(model))
	if strings.HasPrefix(trimmed, "gpt-5") {
		return nil
	}
	t := 0.4
	return &t
}

// ChatClient is a non-streaming provider on the OpenAI SDK's Chat
// Completions API. The whole document arrives as a single delta.
type ChatClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewChatClient(apiKey, model string) *ChatClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &ChatClient{
		client:    &client,
		model:     openai.ChatModel(model),
		modelName: model,
	}
}

func (c *ChatClient) Generate(ctx context.Context, prompt string, onStatus func(string), onDelta func(string)) (string, error) {
	onStatus("Waiting for full response...")

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		if IsTimeout(err) {
			return "", &GenerationError{Kind: KindTimeout, Err: err}
		}
		return "", &GenerationError{Kind: KindAPI, Message: err.Error(), Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &GenerationError{Kind: KindEmpty}
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &GenerationError{Kind: KindEmpty}
	}
	onDelta(content)
	return content, nil
}
