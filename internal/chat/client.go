package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request is the body of POST /api/chat.
type Request struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// Response is the reply of POST /api/chat.
type Response struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// HTTPError is returned for non-2xx replies.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("chat: http %d", e.Status)
	}
	return fmt.Sprintf("chat: http %d: %s", e.Status, e.Detail)
}

// Client talks to the assetiq chat backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Now     func() time.Time
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Now:     time.Now,
	}
}

// NewSessionID returns a per-request session id of the form session-<unix ms>.
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("session-%d", now.UnixMilli())
}

// CompareMessage is the prompt sent for a pair of instruments.
func CompareMessage(a, b string) string {
	return fmt.Sprintf("Compare %s and %s on key metrics", a, b)
}

// Compare asks the backend to compare two instruments in a fresh session.
func (c *Client) Compare(ctx context.Context, a, b string) (Response, error) {
	return c.Chat(ctx, Request{
		SessionID: NewSessionID(c.now()),
		Message:   CompareMessage(a, b),
	})
}

func (c *Client) Chat(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("chat: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("chat: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var out Response
	if err := c.do(httpReq, &out); err != nil {
		return Response{}, err
	}
	return out, nil
}

// Health checks GET /api/health.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("chat: build request: %w", err)
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(httpReq, &out); err != nil {
		return err
	}
	if out.Status != "healthy" {
		return fmt.Errorf("chat: backend status %q", out.Status)
	}
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("chat: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("chat: decode response: %w", err)
	}
	return nil
}

// readDetail extracts a FastAPI-style {"detail": ...} message, falling back
// to the raw body.
func readDetail(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != nil {
		if s, ok := body.Detail.(string); ok {
			return s
		}
		b, _ := json.Marshal(body.Detail)
		return string(b)
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
