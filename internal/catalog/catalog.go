package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/jask/assetiq/internal/dropdown"
)

// Category is one named group of instruments, kept in display order.
type Category struct {
	Name        string   `yaml:"name"`
	Instruments []string `yaml:"instruments"`
}

// Catalog maps categories to their instruments. Order is preserved everywhere.
type Catalog struct {
	categories []Category
	byName     map[string]int
}

var builtin = []Category{
	{Name: "Mutual Fund", Instruments: []string{"HDFC Equity Fund", "ICICI Bluechip Fund", "SBI Small Cap"}},
	{Name: "ETF", Instruments: []string{"NIFTY50 ETF", "BankBees", "Gold ETF"}},
	{Name: "Stocks", Instruments: []string{"Reliance", "Infosys", "TCS"}},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// New validates categories and builds a Catalog from them.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]int, len(categories))}
	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: empty category name")
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate category %q", name)
		}
		seen := make(map[string]bool, len(cat.Instruments))
		instruments := make([]string, 0, len(cat.Instruments))
		for _, inst := range cat.Instruments {
			inst = strings.TrimSpace(inst)
			if inst == "" {
				return nil, fmt.Errorf("catalog: empty instrument in %q", name)
			}
			if seen[inst] {
				return nil, fmt.Errorf("catalog: duplicate instrument %q in %q", inst, name)
			}
			seen[inst] = true
			instruments = append(instruments, inst)
		}
		c.byName[name] = len(c.categories)
		c.categories = append(c.categories, Category{Name: name, Instruments: instruments})
	}
	return c, nil
}

// Load reads a YAML list of {name, instruments} entries.
func Load(r io.Reader) (*Catalog, error) {
	var cats []Category
	if err := yaml.NewDecoder(r).Decode(&cats); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return New(cats)
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Name)
	}
	return out
}

// Instruments returns the instruments of category, or nil if it is unknown.
func (c *Catalog) Instruments(category string) []string {
	idx, ok := c.byName[category]
	if !ok {
		return nil
	}
	return append([]string(nil), c.categories[idx].Instruments...)
}

func (c *Catalog) CategoryOf(instrument string) (string, bool) {
	for _, cat := range c.categories {
		for _, inst := range cat.Instruments {
			if inst == instrument {
				return cat.Name, true
			}
		}
	}
	return "", false
}

// maxResolveRatio bounds how far a typed name may be from an instrument,
// relative to the longer name's length in runes.
const maxResolveRatio = 0.34

// Resolve maps a loosely typed name onto a known instrument: exact match
// first, then case-insensitive, then the closest name by edit distance.
func (c *Catalog) Resolve(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if _, ok := c.CategoryOf(name); ok {
		return name, true
	}
	lower := strings.ToLower(name)
	best, bestScore := "", 1.0
	for _, cat := range c.categories {
		for _, inst := range cat.Instruments {
			instLower := strings.ToLower(inst)
			if instLower == lower {
				return inst, true
			}
			dist := levenshtein.ComputeDistance(lower, instLower)
			score := float64(dist) / float64(max(utf8.RuneCountInString(instLower), utf8.RuneCountInString(lower)))
			if score < bestScore {
				best, bestScore = inst, score
			}
		}
	}
	if best == "" || bestScore > maxResolveRatio {
		return "", false
	}
	return best, true
}

// Items adapts names to dropdown options.
func Items(names []string) []dropdown.Item {
	out := make([]dropdown.Item, 0, len(names))
	for _, n := range names {
		out = append(out, dropdown.Item{Value: n})
	}
	return out
}
