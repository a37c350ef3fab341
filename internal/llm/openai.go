package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

var ErrOpenAINoAPIKey = errors.New("openai: api key not configured")

// OpenAIProvider uses the official openai-go chat completions client.
type OpenAIProvider struct {
	mu      sync.Mutex
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *openai.Client
}

func NewOpenAIProvider(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIProvider{apiKey: strings.TrimSpace(apiKey), model: strings.TrimSpace(model), timeout: timeout}
}

// SetBaseURL points the client at a compatible endpoint.
func (p *OpenAIProvider) SetBaseURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.baseURL = strings.TrimSpace(url)
	p.client = nil
}

func (p *OpenAIProvider) SetAPIKey(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.apiKey = strings.TrimSpace(key)
	p.client = nil
}

func (p *OpenAIProvider) Model() string {
	if p.model == "" {
		return defaultOpenAIModel
	}
	return p.model
}

func (p *OpenAIProvider) ensureClient() (*openai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.apiKey == "" {
		return nil, ErrOpenAINoAPIKey
	}
	if p.client == nil {
		opts := []option.RequestOption{option.WithAPIKey(p.apiKey), option.WithMaxRetries(1)}
		if p.baseURL != "" {
			opts = append(opts, option.WithBaseURL(p.baseURL))
		}
		c := openai.NewClient(opts...)
		p.client = &c
	}
	return p.client, nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	client, err := p.ensureClient()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.Model()),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
