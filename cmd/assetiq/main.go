package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"

	"github.com/jask/assetiq/internal/catalog"
	"github.com/jask/assetiq/internal/chat"
	"github.com/jask/assetiq/internal/config"
	"github.com/jask/assetiq/internal/database"
	"github.com/jask/assetiq/internal/database/repository"
	"github.com/jask/assetiq/internal/prefs"
	"github.com/jask/assetiq/internal/service"
	"github.com/jask/assetiq/internal/tui"
)

func main() {
	configPath := getopt.StringLong("config", 'c', "", "config file (TOML)")
	apiURL := getopt.StringLong("api-url", 'u', "", "chat backend base URL")
	category := getopt.StringLong("category", 'g', "", "initial category")
	instA := getopt.StringLong("a", 'a', "", "instrument A")
	instB := getopt.StringLong("b", 'b', "", "instrument B")
	getopt.Parse()

	ctx := context.Background()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *apiURL != "" {
		cfg.Client.APIURL = *apiURL
	}

	cat := catalog.Default()
	if cfg.UI.CatalogPath != "" {
		if cat, err = catalog.LoadFile(cfg.UI.CatalogPath); err != nil {
			log.Fatalf("catalog: %v", err)
		}
	}

	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	client := chat.NewClient(cfg.Client.APIURL, cfg.Client.Timeout)
	comparer := &service.Comparer{Chat: client, History: repository.NewComparisonRepo(db)}

	// piped output gets a single comparison and no screen
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		if err := compareOnce(ctx, cat, comparer, *instA, *instB); err != nil {
			fmt.Fprintln(os.Stderr, failureHint(err, cfg.Client.APIURL))
			os.Exit(1)
		}
		return
	}

	prefsPath, err := prefs.SelectionPath()
	if err != nil {
		log.Printf("warn: selection will not be saved: %v", err)
	}
	initial, err := prefs.LoadSelection(prefsPath)
	if err != nil {
		log.Printf("warn: ignoring saved selection: %v", err)
	}
	initial = applyFlags(cat, initial, *category, *instA, *instB)

	if path := os.Getenv("ASSETIQ_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "debug")
		if err != nil {
			log.Fatalf("debug log: %v", err)
		}
		defer f.Close()
	}

	app := tui.New(ctx, cat, tui.Services{
		Comparer:    comparer,
		Maintenance: &service.MaintenanceService{DB: db},
		Health:      client.Health,
	}, tui.Options{
		APIURL:      cfg.Client.APIURL,
		PrefsPath:   prefsPath,
		Initial:     initial,
		HistorySize: cfg.UI.HistorySize,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// applyFlags overlays command line choices on the saved selection. Instrument
// names are resolved against the catalog; the category follows instrument A
// when not given.
func applyFlags(cat *catalog.Catalog, sel prefs.Selection, category, a, b string) prefs.Selection {
	if category = strings.TrimSpace(category); category != "" {
		if cat.Instruments(category) == nil {
			log.Printf("warn: unknown category %q", category)
		} else if category != sel.Category {
			sel = prefs.Selection{Category: category}
		}
	}
	if name, ok := cat.Resolve(a); ok {
		sel.InstrumentA = name
		if category == "" {
			sel.Category, _ = cat.CategoryOf(name)
		}
	}
	if name, ok := cat.Resolve(b); ok {
		sel.InstrumentB = name
	}
	return sel
}

// failureHint is the line shown when a one-shot comparison fails.
func failureHint(err error, apiURL string) string {
	if errors.Is(err, service.ErrIncompleteSelection) {
		return fmt.Sprintf("%v: pass --a and --b", err)
	}
	return fmt.Sprintf("%s\n%v", service.FailureText(apiURL), err)
}

func compareOnce(ctx context.Context, cat *catalog.Catalog, c *service.Comparer, a, b string) error {
	if name, ok := cat.Resolve(a); ok {
		a = name
	}
	if name, ok := cat.Resolve(b); ok {
		b = name
	}
	category, _ := cat.CategoryOf(a)
	res, err := c.Compare(ctx, category, a, b)
	if res.Response != "" {
		fmt.Println(res.Response)
	}
	if err != nil && res.Response != "" {
		log.Printf("warn: %v", err)
		return nil
	}
	return err
}
