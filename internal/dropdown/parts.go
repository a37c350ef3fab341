package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	indicatorClosed = "▾"
	indicatorOpen   = "▴"
)

// Item describes one selectable option. Value is its identity; callers must
// keep values unique within one widget.
type Item struct {
	Value string
	Label string
}

func (i Item) label() string {
	if i.Label == "" {
		return i.Value
	}
	return i.Label
}

// ValueLabel shows the committed value or the placeholder.
type ValueLabel struct {
	state       *State
	placeholder string
}

func (l ValueLabel) Text() string {
	if v := l.state.Value(); v != "" {
		return v
	}
	return l.placeholder
}

func (l ValueLabel) Render() string {
	if l.state.Value() == "" {
		return placeholderStyle.Render(l.placeholder)
	}
	return valueStyle.Render(l.state.Value())
}

// Trigger toggles the panel and displays the current value.
type Trigger struct {
	state *State
	label ValueLabel
}

// Activate toggles the panel. It reports false when the widget is disabled.
func (t Trigger) Activate() bool {
	if t.state.Disabled() {
		return false
	}
	t.state.Toggle()
	return true
}

func (t Trigger) Indicator() string {
	if t.state.Open() {
		return indicatorOpen
	}
	return indicatorClosed
}

func (t Trigger) Render(width int, focused bool) string {
	style := triggerStyle
	switch {
	case t.state.Disabled():
		style = triggerDisabledStyle
	case focused:
		style = triggerFocusedStyle
	}
	text := t.label.Text()
	if !t.state.Disabled() {
		text = t.label.Render()
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 4 {
		inner = 4
	}
	gap := inner - lipgloss.Width(t.label.Text()) - lipgloss.Width(indicatorClosed)
	if gap < 1 {
		gap = 1
	}
	line := text + strings.Repeat(" ", gap) + indicatorStyle.Render(t.Indicator())
	return style.Width(inner + style.GetHorizontalPadding()).Render(line)
}

// OptionsPanel mounts Options only while the widget is open.
type OptionsPanel struct {
	state *State
	items []Item
}

func (p OptionsPanel) Len() int { return len(p.items) }

// Mount returns the options in caller order, or nil while closed.
func (p OptionsPanel) Mount() []*Option {
	if !p.state.Open() {
		return nil
	}
	highlight := p.highlightIndex()
	out := make([]*Option, 0, len(p.items))
	for i, item := range p.items {
		out = append(out, &Option{state: p.state, item: item, highlighted: i == highlight, mount: p.state.mount})
	}
	return out
}

// highlightIndex is the last option matching the committed value, or -1.
func (p OptionsPanel) highlightIndex() int {
	v := p.state.Value()
	idx := -1
	for i, item := range p.items {
		if item.Value == v {
			idx = i
		}
	}
	return idx
}

func (p OptionsPanel) Render(width, cursor int) string {
	opts := p.Mount()
	if opts == nil {
		return ""
	}
	if len(opts) == 0 {
		return panelStyle.Render(placeholderStyle.Render("(no options)"))
	}
	rows := make([]string, 0, len(opts))
	for i, opt := range opts {
		rows = append(rows, opt.Render(i == cursor))
	}
	inner := width - panelStyle.GetHorizontalFrameSize()
	if inner < 4 {
		inner = 4
	}
	return panelStyle.Width(inner + panelStyle.GetHorizontalPadding()).Render(strings.Join(rows, "\n"))
}

// Option is one mounted entry of an open panel. It is only live until the
// panel closes, the widget is disabled or the options are replaced.
type Option struct {
	state       *State
	item        Item
	highlighted bool
	mount       uint64
}

func (o *Option) Value() string { return o.item.Value }
func (o *Option) Label() string { return o.item.label() }

// Activate commits the option's value and closes the panel. On an option
// that is no longer live it does nothing.
func (o *Option) Activate() {
	if !o.state.live(o.mount) {
		return
	}
	o.state.Select(o.item.Value)
}

// Selected reports whether this option carries the committed value. With
// duplicate values only the last one in render order is selected.
func (o *Option) Selected() bool {
	return o.highlighted && o.item.Value == o.state.Value()
}

func (o *Option) Render(cursor bool) string {
	marker := "  "
	style := optionStyle
	if o.Selected() {
		marker = "✓ "
		style = optionSelectedStyle
	}
	if cursor {
		style = style.Inherit(optionCursorStyle)
	}
	return style.Render(marker + o.Label())
}
