package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/assetiq/internal/catalog"
	"github.com/jask/assetiq/internal/chat"
	"github.com/jask/assetiq/internal/prefs"
	"github.com/jask/assetiq/internal/service"
)

type fakeChat struct {
	calls [][2]string
	err   error
}

func (f *fakeChat) Compare(_ context.Context, a, b string) (chat.Response, error) {
	f.calls = append(f.calls, [2]string{a, b})
	if f.err != nil {
		return chat.Response{}, f.err
	}
	return chat.Response{Response: "| Metric | " + a + " | " + b + " |", SessionID: "session-1"}, nil
}

func newTestApp(t *testing.T, fc *fakeChat, opts Options) *App {
	t.Helper()
	if opts.APIURL == "" {
		opts.APIURL = "http://localhost:8000"
	}
	return New(context.Background(), catalog.Default(), Services{Comparer: &service.Comparer{Chat: fc}}, opts)
}

func press(t *testing.T, a *App, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = a.Update(msg)
	}
	return cmd
}

// drain runs cmd and feeds every resulting message back into the app.
// Spinner ticks are skipped.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, a, c)
		}
	case tea.QuitMsg, spinner.TickMsg:
	default:
		_, next := a.Update(msg)
		drain(t, a, next)
	}
}

func TestInstrumentsDisabledUntilCategory(t *testing.T) {
	a := newTestApp(t, &fakeChat{}, Options{})
	require.True(t, a.instrumentA.Disabled())
	require.True(t, a.instrumentB.Disabled())

	press(t, a, "tab", "enter")
	require.False(t, a.instrumentA.Open())
	require.Equal(t, "Select a category first", a.status)
}

func TestCategoryEnablesInstruments(t *testing.T) {
	a := newTestApp(t, &fakeChat{}, Options{})

	// Category: open, move to the second entry, select.
	press(t, a, "enter", "down", "enter")
	cat, _, _ := a.Values()
	require.Equal(t, catalog.Default().Categories()[1], cat)
	require.False(t, a.categorySelect.Open())
	require.False(t, a.instrumentA.Disabled())
	require.Len(t, a.instrumentA.Options(), len(catalog.Default().Instruments(cat)))
}

func TestCompareFlow(t *testing.T) {
	fc := &fakeChat{}
	prefsPath := filepath.Join(t.TempDir(), "selection.yaml")
	a := newTestApp(t, fc, Options{PrefsPath: prefsPath})

	press(t, a, "enter", "enter")
	press(t, a, "tab", "enter", "enter")
	press(t, a, "tab", "enter", "down", "enter")
	cat, x, y := a.Values()
	instruments := catalog.Default().Instruments(cat)
	require.Equal(t, instruments[0], x)
	require.Equal(t, instruments[1], y)

	cmd := press(t, a, "tab", "enter")
	require.True(t, a.Loading())
	require.Contains(t, a.View(), "Comparing...")
	require.Contains(t, a.View(), loadingResultText)

	drain(t, a, cmd)
	require.False(t, a.Loading())
	require.Equal(t, [][2]string{{x, y}}, fc.calls)
	require.NotNil(t, a.comparison)
	require.Contains(t, a.View(), "AI Analysis")
	require.False(t, a.statusErr)

	sel, err := prefs.LoadSelection(prefsPath)
	require.NoError(t, err)
	require.Equal(t, prefs.Selection{Category: cat, InstrumentA: x, InstrumentB: y}, sel)
}

func TestCompareNeedsBothInstruments(t *testing.T) {
	fc := &fakeChat{}
	a := newTestApp(t, fc, Options{})
	a.focus = focusCompare
	cmd := press(t, a, "enter")
	require.Nil(t, cmd)
	require.False(t, a.Loading())
	require.Empty(t, fc.calls)
	require.Contains(t, a.View(), emptyResultText)
}

func TestCompareFailureShowsBackendHint(t *testing.T) {
	fc := &fakeChat{err: errors.New("connection refused")}
	a := newTestApp(t, fc, Options{Initial: prefs.Selection{Category: "Stocks", InstrumentA: "TCS", InstrumentB: "Infosys"}})
	a.focus = focusCompare

	drain(t, a, press(t, a, "enter"))
	require.False(t, a.Loading())
	require.True(t, a.statusErr)
	require.Equal(t, service.FailureText("http://localhost:8000"), a.comparison.Response)
}

func TestInitialSelectionFromPrefs(t *testing.T) {
	a := newTestApp(t, &fakeChat{}, Options{Initial: prefs.Selection{Category: "Stocks", InstrumentA: "TCS"}})
	cat, x, y := a.Values()
	require.Equal(t, "Stocks", cat)
	require.Equal(t, "TCS", x)
	require.Empty(t, y)
	require.False(t, a.instrumentA.Disabled())

	a = newTestApp(t, &fakeChat{}, Options{Initial: prefs.Selection{Category: "Crypto", InstrumentA: "BTC"}})
	cat, x, _ = a.Values()
	require.Empty(t, cat)
	require.Empty(t, x)
	require.True(t, a.instrumentA.Disabled())
}

func TestOpenPanelCapturesKeys(t *testing.T) {
	a := newTestApp(t, &fakeChat{}, Options{})
	press(t, a, "enter")
	require.True(t, a.categorySelect.Open())

	// q and tab go to the open panel instead of quitting or moving focus.
	require.Nil(t, press(t, a, "q"))
	press(t, a, "tab")
	require.Equal(t, focusCategory, a.focus)

	press(t, a, "esc")
	require.False(t, a.categorySelect.Open())
	press(t, a, "tab")
	require.Equal(t, focusInstrumentA, a.focus)
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, &fakeChat{}, Options{})
	cmd := press(t, a, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestHealthStatus(t *testing.T) {
	a := New(context.Background(), catalog.Default(), Services{
		Comparer: &service.Comparer{Chat: &fakeChat{}},
		Health:   func(context.Context) error { return errors.New("down") },
	}, Options{})
	drain(t, a, a.checkHealth())
	require.Equal(t, "unreachable", a.backend)
	require.Contains(t, a.renderStatusBar(), "backend unreachable")
}
