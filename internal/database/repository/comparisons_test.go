package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/assetiq/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestComparisonRecordAndRecent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := NewComparisonRepo(openTestDB(t))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, pair := range [][2]string{{"Reliance", "TCS"}, {"Gold ETF", "BankBees"}, {"Infosys", "TCS"}} {
		c := &Comparison{
			SessionID:   "session-1",
			Category:    "Stocks",
			InstrumentA: pair[0],
			InstrumentB: pair[1],
			Response:    "ok",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Record(ctx, c, 0))
		require.NotEmpty(t, c.ID)
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "Infosys", recent[0].InstrumentA)
	require.Equal(t, "Gold ETF", recent[1].InstrumentA)
	require.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	require.Equal(t, "BankBees", recent[1].InstrumentB)
	require.NotEqual(t, recent[0].ID, recent[1].ID)
}

func TestComparisonRecordPrunes(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewComparisonRepo(db)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, &Comparison{
			SessionID:   "s",
			InstrumentA: "A",
			InstrumentB: "B",
			Response:    "r",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}, 3))
	}

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comparisons").Scan(&count))
	require.Equal(t, 3, count)

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.True(t, recent[len(recent)-1].CreatedAt.Equal(base.Add(2*time.Hour)))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	require.NoError(t, database.RunMigrations(path))
	require.NoError(t, database.RunMigrations(path))
}
