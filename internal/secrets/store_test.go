package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s := &Store{Dir: filepath.Join(t.TempDir(), "assetiq")}

	_, err := s.Get("openai")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(" OpenAI ", " sk-secret \n"))
	got, err := s.Get("openai")
	require.NoError(t, err)
	require.Equal(t, "sk-secret", got)

	info, err := os.Stat(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(filepath.Join(s.Dir, fileName))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "sk-secret"))

	require.NoError(t, s.Delete("openai"))
	_, err = s.Get("openai")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRequiresProvider(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	require.Error(t, s.Put(" ", "k"))
	_, err := s.Get("")
	require.Error(t, err)
	require.Error(t, s.Delete(""))
}
