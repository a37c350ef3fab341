package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jask/assetiq/internal/chat"
	"github.com/jask/assetiq/internal/database/repository"
)

var ErrIncompleteSelection = errors.New("service: two instruments are required")

// DefaultHistoryKeep is how many comparisons are retained.
const DefaultHistoryKeep = 50

// ChatClient is the part of chat.Client the comparer uses.
type ChatClient interface {
	Compare(ctx context.Context, a, b string) (chat.Response, error)
}

// HistoryStore persists finished comparisons.
type HistoryStore interface {
	Record(ctx context.Context, c *repository.Comparison, keep int) error
	Recent(ctx context.Context, limit int) ([]repository.Comparison, error)
}

// Comparison is one finished request.
type Comparison struct {
	Category  string
	A         string
	B         string
	Response  string
	SessionID string
	CreatedAt time.Time
}

// Comparer issues comparison requests and records them. History is optional.
type Comparer struct {
	Chat    ChatClient
	History HistoryStore
	Keep    int
	Now     func() time.Time
}

// FailureText is shown in place of the analysis when the request fails.
func FailureText(apiURL string) string {
	return fmt.Sprintf("Error: Unable to fetch comparison data. Please ensure the backend server is running on %s", apiURL)
}

// Compare issues one chat request for a and b. A history failure is returned
// alongside the successful comparison.
func (s *Comparer) Compare(ctx context.Context, category, a, b string) (Comparison, error) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return Comparison{}, ErrIncompleteSelection
	}
	resp, err := s.Chat.Compare(ctx, a, b)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare %s and %s: %w", a, b, err)
	}
	out := Comparison{
		Category:  category,
		A:         a,
		B:         b,
		Response:  resp.Response,
		SessionID: resp.SessionID,
		CreatedAt: s.now(),
	}
	if s.History == nil {
		return out, nil
	}
	keep := s.Keep
	if keep == 0 {
		keep = DefaultHistoryKeep
	}
	row := &repository.Comparison{
		SessionID:   out.SessionID,
		Category:    out.Category,
		InstrumentA: out.A,
		InstrumentB: out.B,
		Response:    out.Response,
		CreatedAt:   out.CreatedAt,
	}
	if err := s.History.Record(ctx, row, keep); err != nil {
		return out, fmt.Errorf("record comparison: %w", err)
	}
	return out, nil
}

// Recent lists up to n past comparisons, newest first.
func (s *Comparer) Recent(ctx context.Context, n int) ([]Comparison, error) {
	if s.History == nil {
		return nil, nil
	}
	rows, err := s.History.Recent(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	out := make([]Comparison, 0, len(rows))
	for _, r := range rows {
		out = append(out, Comparison{
			Category:  r.Category,
			A:         r.InstrumentA,
			B:         r.InstrumentB,
			Response:  r.Response,
			SessionID: r.SessionID,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

func (s *Comparer) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC().Truncate(time.Second)
	}
	return s.Now()
}
