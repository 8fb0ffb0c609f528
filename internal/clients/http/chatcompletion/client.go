// Package chatcompletion is a minimal client for OpenAI-compatible
// chat completion endpoints such as Groq.
package chatcompletion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultURL is the Groq completions endpoint.
const DefaultURL = "https://api.groq.com/openai/v1/chat/completions"

const maxErrorBody = 4 << 10

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// StatusError reports a non-2xx answer from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat completion returned %d: %s", e.StatusCode, e.Body)
}

// Client posts completion requests with a bearer credential.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewHTTPClient returns an otelhttp-instrumented client bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// NewClient builds a client. An empty url selects DefaultURL.
func NewClient(url, apiKey string, httpClient *http.Client) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultURL
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chat completion API key is required")
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{url: url, apiKey: apiKey, http: httpClient}, nil
}

// Create sends one completion request.
func (c *Client) Create(ctx context.Context, req Request) (*Response, error) {
	if c == nil || c.http == nil {
		return nil, errors.New("chat completion client not configured")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode completion request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call chat completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	return &out, nil
}
