package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/assetiq/internal/chat"
	"github.com/jask/assetiq/internal/database"
	"github.com/jask/assetiq/internal/database/repository"
)

type fakeChat struct {
	calls [][2]string
	resp  chat.Response
	err   error
}

func (f *fakeChat) Compare(_ context.Context, a, b string) (chat.Response, error) {
	f.calls = append(f.calls, [2]string{a, b})
	return f.resp, f.err
}

type failingHistory struct{}

func (failingHistory) Record(context.Context, *repository.Comparison, int) error {
	return errors.New("disk full")
}

func (failingHistory) Recent(context.Context, int) ([]repository.Comparison, error) {
	return nil, errors.New("disk full")
}

func TestCompareRequiresBothInstruments(t *testing.T) {
	fc := &fakeChat{}
	s := &Comparer{Chat: fc}
	for _, pair := range [][2]string{{"", "TCS"}, {"TCS", ""}, {" ", " "}} {
		_, err := s.Compare(context.Background(), "Stocks", pair[0], pair[1])
		require.ErrorIs(t, err, ErrIncompleteSelection)
	}
	require.Empty(t, fc.calls)
}

func TestCompareRecordsHistory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	fc := &fakeChat{resp: chat.Response{Response: "TCS leads", SessionID: "session-1"}}
	s := &Comparer{Chat: fc, History: repository.NewComparisonRepo(db), Now: func() time.Time { return now }}

	got, err := s.Compare(ctx, "Stocks", "Infosys", "TCS")
	require.NoError(t, err)
	require.Equal(t, Comparison{Category: "Stocks", A: "Infosys", B: "TCS", Response: "TCS leads", SessionID: "session-1", CreatedAt: now}, got)
	require.Equal(t, [][2]string{{"Infosys", "TCS"}}, fc.calls)

	recent, err := s.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "Infosys", recent[0].A)
	require.True(t, recent[0].CreatedAt.Equal(now))

	require.NoError(t, (&MaintenanceService{DB: db}).ClearHistory(ctx))
	recent, err = s.Recent(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, recent)
}

func TestCompareChatFailure(t *testing.T) {
	boom := &chat.HTTPError{Status: 500, Detail: "upstream"}
	s := &Comparer{Chat: &fakeChat{err: boom}}
	_, err := s.Compare(context.Background(), "ETF", "Gold ETF", "BankBees")
	var httpErr *chat.HTTPError
	require.True(t, errors.As(err, &httpErr))
}

func TestCompareHistoryFailureKeepsResult(t *testing.T) {
	s := &Comparer{Chat: &fakeChat{resp: chat.Response{Response: "ok"}}, History: failingHistory{}}
	got, err := s.Compare(context.Background(), "ETF", "Gold ETF", "BankBees")
	require.ErrorContains(t, err, "record comparison")
	require.Equal(t, "ok", got.Response)
}

func TestFailureText(t *testing.T) {
	require.Equal(t,
		"Error: Unable to fetch comparison data. Please ensure the backend server is running on http://localhost:8000",
		FailureText("http://localhost:8000"))
}

func TestClearHistoryWithoutDB(t *testing.T) {
	require.Error(t, (&MaintenanceService{}).ClearHistory(context.Background()))
}
