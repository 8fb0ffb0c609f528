// Package groq answers advisor prompts through the Groq chat completion API.
package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/henri-storefront/internal/clients/http/chatcompletion"
	"github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
)

const (
	DefaultModel       = "llama-3.1-8b-instant"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 600
)

type creator interface {
	Create(ctx context.Context, req chatcompletion.Request) (*chatcompletion.Response, error)
}

// Completer adapts a chat completion client to ports.Completer.
type Completer struct {
	client      creator
	model       string
	temperature float64
	maxTokens   int
}

type Option func(*Completer)

func WithModel(model string) Option {
	return func(c *Completer) {
		if model = strings.TrimSpace(model); model != "" {
			c.model = model
		}
	}
}

func WithTemperature(t float64) Option {
	return func(c *Completer) { c.temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(c *Completer) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// NewCompleter wraps client. A nil client yields ports.ErrNotConfigured on every call.
func NewCompleter(client *chatcompletion.Client, opts ...Option) *Completer {
	var cr creator
	if client != nil {
		cr = client
	}
	return newCompleter(cr, opts...)
}

func newCompleter(client creator, opts ...Option) *Completer {
	c := &Completer{
		client:      client,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Completer) Complete(ctx context.Context, prompt ports.Prompt) (string, error) {
	if c == nil || c.client == nil {
		return "", ports.ErrNotConfigured
	}
	resp, err := c.client.Create(ctx, chatcompletion.Request{
		Model: c.model,
		Messages: []chatcompletion.Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		var statusErr *chatcompletion.StatusError
		if errors.As(err, &statusErr) {
			return "", fmt.Errorf("%w: status %d", ports.ErrUpstream, statusErr.StatusCode)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %w", ports.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ports.ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}

var _ ports.Completer = (*Completer)(nil)
