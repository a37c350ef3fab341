package dropdown

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Config holds the options and initial state of a Widget.
type Config struct {
	Options      []Item
	InitialValue string
	Disabled     bool
	Placeholder  string
	// OnChange is called synchronously once per committed selection, after
	// the state has been updated.
	OnChange func(string)
}

// Widget is one dropdown instance. It owns its State; parts obtained from it
// share that State and nothing else.
type Widget struct {
	state       *State
	items       []Item
	placeholder string
	cursor      int
}

// New builds a closed widget seeded with cfg.InitialValue.
func New(cfg Config) *Widget {
	onChange := cfg.OnChange
	if onChange == nil {
		onChange = func(string) {}
	}
	return &Widget{
		state: &State{
			value:    cfg.InitialValue,
			disabled: cfg.Disabled,
			onChange: onChange,
			bound:    true,
		},
		items:       append([]Item(nil), cfg.Options...),
		placeholder: cfg.Placeholder,
	}
}

// Unmount detaches the state. Parts kept past this point fail fast.
func (w *Widget) Unmount() {
	w.state.bound = false
}

func (w *Widget) State() *State { return w.state }

func (w *Widget) Value() string  { return w.state.Value() }
func (w *Widget) Open() bool     { return w.state.Open() }
func (w *Widget) Disabled() bool { return w.state.Disabled() }

func (w *Widget) Toggle() {
	w.state.Toggle()
	w.resetCursor()
}

func (w *Widget) Select(v string) { w.state.Select(v) }

// SetDisabled pins the widget closed while disabled.
func (w *Widget) SetDisabled(disabled bool) { w.state.setDisabled(disabled) }

// SetValue replaces the value without notifying OnChange.
func (w *Widget) SetValue(v string) { w.state.setValue(v) }

// SetOptions replaces the option list. The committed value is kept.
func (w *Widget) SetOptions(items []Item) {
	w.state.remount()
	w.items = append([]Item(nil), items...)
	w.resetCursor()
}

func (w *Widget) Options() []Item {
	return append([]Item(nil), w.items...)
}

func (w *Widget) Label() ValueLabel {
	return ValueLabel{state: w.state, placeholder: w.placeholder}
}

func (w *Widget) Trigger() Trigger {
	return Trigger{state: w.state, label: w.Label()}
}

func (w *Widget) Panel() OptionsPanel {
	return OptionsPanel{state: w.state, items: w.items}
}

func (w *Widget) Cursor() int { return w.cursor }

type Action int

const (
	ActionNone Action = iota
	ActionToggled
	ActionMoved
	ActionSelected
	ActionRejected
)

type Result struct {
	Action Action
	Value  string
}

// HandleKey maps a key name onto trigger and option activations.
func (w *Widget) HandleKey(keyName string) Result {
	if w.state.Disabled() {
		switch keyName {
		case "enter", " ", "space", "up", "k", "down", "j", "esc":
			return Result{Action: ActionRejected}
		}
		return Result{Action: ActionNone}
	}
	if !w.state.Open() {
		switch keyName {
		case "enter", " ", "space":
			w.Trigger().Activate()
			w.resetCursor()
			return Result{Action: ActionToggled}
		}
		return Result{Action: ActionNone}
	}
	switch keyName {
	case "up", "k":
		if w.cursor > 0 {
			w.cursor--
			return Result{Action: ActionMoved}
		}
	case "down", "j":
		if w.cursor < len(w.items)-1 {
			w.cursor++
			return Result{Action: ActionMoved}
		}
	case "enter", " ", "space":
		opts := w.Panel().Mount()
		if w.cursor < 0 || w.cursor >= len(opts) {
			return Result{Action: ActionNone}
		}
		opt := opts[w.cursor]
		opt.Activate()
		return Result{Action: ActionSelected, Value: opt.Value()}
	case "esc":
		w.Trigger().Activate()
		return Result{Action: ActionToggled}
	}
	return Result{Action: ActionNone}
}

// Update adapts HandleKey to bubbletea key messages.
func (w *Widget) Update(msg tea.Msg) Result {
	if m, ok := msg.(tea.KeyMsg); ok {
		return w.HandleKey(m.String())
	}
	return Result{Action: ActionNone}
}

// View renders the trigger and, when open, the panel below it.
func (w *Widget) View(width int, focused bool) string {
	parts := []string{w.Trigger().Render(width, focused)}
	if panel := w.Panel().Render(width, w.cursor); panel != "" {
		parts = append(parts, panel)
	}
	return strings.Join(parts, "\n")
}

func (w *Widget) resetCursor() {
	w.cursor = 0
	if idx := w.Panel().highlightIndex(); idx >= 0 {
		w.cursor = idx
	}
}
