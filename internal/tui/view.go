package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	emptyResultText   = "Select two instruments to compare."
	loadingResultText = "Analyzing instruments..."
)

func (a *App) View() string {
	header := titleStyle.Render("AssetIQ") + mutedStyle.Render("  Compare Instruments")

	leftW, rightW := a.columnWidths()
	left := lipgloss.JoinVertical(lipgloss.Left,
		a.renderSelectors(leftW),
		"",
		a.renderHistory(leftW),
	)
	right := a.renderResult(rightW)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		a.renderStatusBar(),
		a.renderFooter(),
	)
}

func (a *App) columnWidths() (int, int) {
	left := max(28, a.width/3)
	right := max(30, a.width-left-2)
	return left, right
}

func (a *App) renderSelectors(width int) string {
	inner := width - panelStyle.GetHorizontalFrameSize()
	rows := []string{
		labelStyle.Render("Category"),
		a.categorySelect.View(inner, a.focus == focusCategory),
		labelStyle.Render("Instrument A"),
		a.instrumentA.View(inner, a.focus == focusInstrumentA),
		labelStyle.Render("Instrument B"),
		a.instrumentB.View(inner, a.focus == focusInstrumentB),
		"",
		a.renderButton(),
	}
	return panelStyle.Width(inner).Render(strings.Join(rows, "\n"))
}

func (a *App) renderButton() string {
	switch {
	case a.loading:
		return buttonBusyStyle.Render(a.spinner.View() + " Comparing...")
	case a.focus == focusCompare:
		return buttonFocusedStyle.Render("Compare")
	default:
		return buttonStyle.Render("Compare")
	}
}

func (a *App) renderHistory(width int) string {
	inner := width - panelStyle.GetHorizontalFrameSize()
	lines := []string{headingStyle.Render("Recent")}
	if len(a.history) == 0 {
		lines = append(lines, mutedStyle.Render("No comparisons yet"))
	}
	for _, h := range a.history {
		line := fmt.Sprintf("%s  %s vs %s", h.CreatedAt.Local().Format("Jan 02 15:04"), h.A, h.B)
		lines = append(lines, mutedStyle.MaxWidth(inner).Render(line))
	}
	return panelStyle.Width(inner).Render(strings.Join(lines, "\n"))
}

func (a *App) renderResult(width int) string {
	inner := width - panelStyle.GetHorizontalFrameSize()
	var content string
	switch {
	case a.loading:
		content = a.spinner.View() + " " + mutedStyle.Render(loadingResultText)
	case a.comparison == nil:
		content = mutedStyle.Render(emptyResultText)
	default:
		cards := lipgloss.JoinHorizontal(lipgloss.Top,
			cardStyle.Render(labelStyle.Render("Instrument A")+"\n"+a.comparison.A),
			"  ",
			cardStyle.Render(labelStyle.Render("Instrument B")+"\n"+a.comparison.B),
		)
		content = strings.Join([]string{cards, "", headingStyle.Render("AI Analysis"), a.viewport.View()}, "\n")
	}
	return panelStyle.Width(inner).Render(content)
}

// setResult loads the current comparison text into the viewport.
func (a *App) setResult() {
	a.resizeViewport()
	if a.comparison == nil {
		a.viewport.SetContent("")
		return
	}
	a.viewport.SetContent(lipgloss.NewStyle().Width(a.viewport.Width).Render(a.comparison.Response))
	a.viewport.GotoTop()
}

func (a *App) resizeViewport() {
	_, right := a.columnWidths()
	a.viewport.Width = max(10, right-panelStyle.GetHorizontalFrameSize())
	// header, cards, heading, status and footer
	a.viewport.Height = max(3, a.height-14)
}
