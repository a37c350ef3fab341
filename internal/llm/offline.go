package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Instruments is the catalog view the offline provider needs.
type Instruments interface {
	Resolve(name string) (string, bool)
	CategoryOf(instrument string) (string, bool)
}

// OfflineProvider answers comparison prompts without any network access.
// It only knows which category each instrument belongs to, so its answers
// list what to look at rather than live figures.
type OfflineProvider struct {
	catalog Instruments
}

func NewOfflineProvider(catalog Instruments) *OfflineProvider {
	return &OfflineProvider{catalog: catalog}
}

var comparePattern = regexp.MustCompile(`(?i)^\s*compare\s+(.+?)\s+and\s+(.+?)(?:\s+on\s+key\s+metrics)?\s*\.?\s*$`)

var metricsByCategory = map[string][]string{
	"Mutual Fund": {"Expense ratio", "3y/5y rolling returns", "Standard deviation and Sharpe ratio", "Portfolio concentration", "Fund manager tenure"},
	"ETF":         {"Expense ratio", "Tracking error", "Liquidity and bid-ask spread", "Premium/discount to iNAV", "Underlying index or asset"},
	"Stocks":      {"Revenue and profit growth", "Return on equity", "Price/earnings ratio", "Debt/equity", "Dividend yield"},
}

var genericMetrics = []string{"Historical returns", "Volatility", "Costs", "Liquidity"}

func (o *OfflineProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m := comparePattern.FindStringSubmatch(req.User)
	if m == nil {
		return "Offline mode: I can only compare two instruments. Ask \"Compare <A> and <B> on key metrics\".", nil
	}
	a, catA := o.lookup(m[1])
	b, catB := o.lookup(m[2])

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s vs %s\n\n", a, b)
	switch {
	case catA != "" && catA == catB:
		fmt.Fprintf(&sb, "Both instruments are in **%s**, so they can be compared like for like.\n\n", catA)
	case catA != "" && catB != "":
		fmt.Fprintf(&sb, "%s is a %s and %s is a %s; compare them on the metrics both share.\n\n", a, catA, b, catB)
	default:
		sb.WriteString("At least one instrument is not in the catalog; only general metrics apply.\n\n")
	}

	sb.WriteString("| Metric | " + a + " | " + b + " |\n|---|---|---|\n")
	for _, metric := range metricsFor(catA, catB) {
		fmt.Fprintf(&sb, "| %s | n/a | n/a |\n", metric)
	}
	sb.WriteString("\n_Offline mode: no live market data was used._")
	return sb.String(), nil
}

func (o *OfflineProvider) lookup(name string) (string, string) {
	name = strings.TrimSpace(name)
	if o.catalog == nil {
		return name, ""
	}
	resolved, ok := o.catalog.Resolve(name)
	if !ok {
		return name, ""
	}
	cat, _ := o.catalog.CategoryOf(resolved)
	return resolved, cat
}

func metricsFor(catA, catB string) []string {
	if catA == catB {
		if metrics, ok := metricsByCategory[catA]; ok {
			return metrics
		}
	}
	return genericMetrics
}
