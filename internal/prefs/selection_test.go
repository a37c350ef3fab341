package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetiq", selectionFile)

	sel, err := LoadSelection(path)
	require.NoError(t, err)
	require.Equal(t, Selection{}, sel)

	want := Selection{Category: "ETF", InstrumentA: "Gold ETF", InstrumentB: "BankBees"}
	require.NoError(t, SaveSelection(path, want))
	got, err := LoadSelection(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadSelectionCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), selectionFile)
	require.NoError(t, os.WriteFile(path, []byte("category: [unterminated"), 0o600))
	_, err := LoadSelection(path)
	require.Error(t, err)
}
