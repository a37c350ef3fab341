package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/assetiq/internal/catalog"
	"github.com/jask/assetiq/internal/dropdown"
	"github.com/jask/assetiq/internal/prefs"
	"github.com/jask/assetiq/internal/service"
)

// Services are the collaborators of the comparison screen. Only Comparer is required.
type Services struct {
	Comparer    *service.Comparer
	Maintenance *service.MaintenanceService
	Health      func(ctx context.Context) error
}

// Options configure an App.
type Options struct {
	APIURL      string
	PrefsPath   string
	Initial     prefs.Selection
	HistorySize int
}

type focusField int

const (
	focusCategory focusField = iota
	focusInstrumentA
	focusInstrumentB
	focusCompare
	focusCount
)

// App is the instrument comparison screen.
type App struct {
	ctx      context.Context
	services Services
	opts     Options
	catalog  *catalog.Catalog
	keys     keyMap

	categorySelect *dropdown.Widget
	instrumentA    *dropdown.Widget
	instrumentB    *dropdown.Widget

	// committed values, written only by the widgets' OnChange callbacks
	category string
	selA     string
	selB     string

	focus      focusField
	loading    bool
	comparison *service.Comparison
	history    []service.Comparison
	status     string
	statusErr  bool
	backend    string

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

func New(ctx context.Context, cat *catalog.Catalog, services Services, opts Options) *App {
	if opts.HistorySize <= 0 {
		opts.HistorySize = 5
	}
	a := &App{
		ctx:      ctx,
		services: services,
		opts:     opts,
		catalog:  cat,
		keys:     defaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(40, 12),
		width:    100,
		height:   32,
	}

	initial := opts.Initial
	if cat.Instruments(initial.Category) == nil {
		initial = prefs.Selection{}
	}
	a.category, a.selA, a.selB = initial.Category, initial.InstrumentA, initial.InstrumentB

	a.categorySelect = dropdown.New(dropdown.Config{
		Options:      catalog.Items(cat.Categories()),
		InitialValue: initial.Category,
		Placeholder:  "Select Category",
		OnChange:     a.onCategory,
	})
	instruments := catalog.Items(cat.Instruments(initial.Category))
	a.instrumentA = dropdown.New(dropdown.Config{
		Options:      instruments,
		InitialValue: initial.InstrumentA,
		Disabled:     initial.Category == "",
		Placeholder:  "Select Instrument A",
		OnChange:     func(v string) { a.selA = v },
	})
	a.instrumentB = dropdown.New(dropdown.Config{
		Options:      instruments,
		InitialValue: initial.InstrumentB,
		Disabled:     initial.Category == "",
		Placeholder:  "Select Instrument B",
		OnChange:     func(v string) { a.selB = v },
	})
	return a
}

// onCategory loads the category's instruments into both instrument widgets.
// Values already committed there are kept.
func (a *App) onCategory(v string) {
	a.category = v
	items := catalog.Items(a.catalog.Instruments(v))
	for _, w := range []*dropdown.Widget{a.instrumentA, a.instrumentB} {
		w.SetOptions(items)
		w.SetDisabled(v == "")
	}
}

type comparisonMsg struct {
	result service.Comparison
	a, b   string
	err    error
}

type historyMsg []service.Comparison

type healthMsg struct{ err error }

type statusMsg string

type errMsg struct{ error }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadHistory(), a.checkHealth())
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Comparer.Recent(a.ctx, a.opts.HistorySize)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(list)
	}
}

func (a *App) checkHealth() tea.Cmd {
	if a.services.Health == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(a.ctx, 3*time.Second)
		defer cancel()
		return healthMsg{err: a.services.Health(ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resizeViewport()
		return a, nil
	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case comparisonMsg:
		return a, a.finishComparison(m)
	case historyMsg:
		a.history = m
		return a, nil
	case healthMsg:
		if m.err != nil {
			a.backend = "unreachable"
		} else {
			a.backend = "healthy"
		}
		return a, nil
	case statusMsg:
		a.status, a.statusErr = string(m), false
		return a, nil
	case errMsg:
		a.status, a.statusErr = m.Error(), true
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) focusedWidget() *dropdown.Widget {
	switch a.focus {
	case focusCategory:
		return a.categorySelect
	case focusInstrumentA:
		return a.instrumentA
	case focusInstrumentB:
		return a.instrumentB
	}
	return nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	w := a.focusedWidget()
	if w != nil && w.Open() {
		a.routeToWidget(w, m)
		return a, nil
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Next):
		a.focus = (a.focus + 1) % focusCount
		return a, nil
	case key.Matches(m, a.keys.Prev):
		a.focus = (a.focus + focusCount - 1) % focusCount
		return a, nil
	case key.Matches(m, a.keys.ScrollUp), key.Matches(m, a.keys.ScrollDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(m)
		return a, cmd
	case key.Matches(m, a.keys.ClearHistory):
		return a, a.clearHistory()
	}

	if w == nil {
		if key.Matches(m, a.keys.Activate) {
			return a, a.compare()
		}
		return a, nil
	}
	a.routeToWidget(w, m)
	return a, nil
}

func (a *App) routeToWidget(w *dropdown.Widget, m tea.KeyMsg) {
	switch res := w.Update(m); res.Action {
	case dropdown.ActionRejected:
		a.status, a.statusErr = "Select a category first", false
	case dropdown.ActionSelected:
		a.status, a.statusErr = "", false
	}
}

// compare reads the committed values at the moment of the request.
func (a *App) compare() tea.Cmd {
	if a.loading {
		return nil
	}
	if a.selA == "" || a.selB == "" {
		a.status, a.statusErr = "Select two instruments to compare.", false
		return nil
	}
	a.loading = true
	a.status, a.statusErr = "", false
	category, x, y := a.category, a.selA, a.selB
	run := func() tea.Msg {
		res, err := a.services.Comparer.Compare(a.ctx, category, x, y)
		return comparisonMsg{result: res, a: x, b: y, err: err}
	}
	return tea.Batch(a.spinner.Tick, run)
}

func (a *App) finishComparison(m comparisonMsg) tea.Cmd {
	a.loading = false
	if m.err != nil && m.result.Response == "" {
		a.comparison = &service.Comparison{A: m.a, B: m.b, Response: service.FailureText(a.opts.APIURL)}
		a.status, a.statusErr = m.err.Error(), true
		a.setResult()
		return nil
	}
	res := m.result
	a.comparison = &res
	a.setResult()
	if m.err != nil {
		a.status, a.statusErr = m.err.Error(), true
	} else {
		a.status, a.statusErr = fmt.Sprintf("Compared %s and %s", res.A, res.B), false
	}
	return tea.Batch(a.saveSelection(res), a.loadHistory())
}

func (a *App) saveSelection(res service.Comparison) tea.Cmd {
	if a.opts.PrefsPath == "" {
		return nil
	}
	sel := prefs.Selection{Category: res.Category, InstrumentA: res.A, InstrumentB: res.B}
	path := a.opts.PrefsPath
	return func() tea.Msg {
		if err := prefs.SaveSelection(path, sel); err != nil {
			return errMsg{fmt.Errorf("save selection: %w", err)}
		}
		return nil
	}
}

func (a *App) clearHistory() tea.Cmd {
	if a.services.Maintenance == nil {
		return func() tea.Msg { return errMsg{errors.New("history is not available")} }
	}
	return tea.Sequence(
		func() tea.Msg {
			if err := a.services.Maintenance.ClearHistory(a.ctx); err != nil {
				return errMsg{err}
			}
			return statusMsg("History cleared")
		},
		a.loadHistory(),
	)
}

// Values returns the committed category and instruments.
func (a *App) Values() (category, instrumentA, instrumentB string) {
	return a.category, a.selA, a.selB
}

func (a *App) Loading() bool { return a.loading }
