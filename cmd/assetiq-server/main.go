package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/pborman/getopt"

	"github.com/jask/assetiq/internal/catalog"
	"github.com/jask/assetiq/internal/config"
	"github.com/jask/assetiq/internal/llm"
	"github.com/jask/assetiq/internal/secrets"
	"github.com/jask/assetiq/internal/server"
)

func main() {
	configPath := getopt.StringLong("config", 'c', "", "config file (TOML)")
	addr := getopt.StringLong("addr", 'l', "", "listen address")
	storeKey := getopt.BoolLong("store-key", 0, "read the provider API key from stdin and store it")
	getopt.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	store, err := secrets.DefaultStore()
	if err != nil {
		log.Printf("warn: key store unavailable: %v", err)
	}

	if *storeKey {
		if store == nil {
			log.Fatalf("store key: no key store")
		}
		key, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && strings.TrimSpace(key) == "" {
			log.Fatalf("read key: %v", err)
		}
		if err := store.Put(cfg.LLM.Provider, key); err != nil {
			log.Fatalf("store key: %v", err)
		}
		fmt.Printf("stored %s key\n", cfg.LLM.Provider)
		return
	}

	cat := catalog.Default()
	if cfg.UI.CatalogPath != "" {
		if cat, err = catalog.LoadFile(cfg.UI.CatalogPath); err != nil {
			log.Fatalf("catalog: %v", err)
		}
	}

	var lookup func(string) (string, error)
	if store != nil {
		lookup = store.Get
	}
	provider, err := newProvider(cfg.LLM, cfg.LLM.ResolveAPIKey(lookup), cat)
	if err != nil {
		log.Fatalf("llm: %v", err)
	}

	systemPrompt, err := server.LoadContext(cfg.Server.ContextPath)
	if err != nil {
		log.Fatalf("context: %v", err)
	}

	logger := log.New(os.Stderr, "assetiq ", log.LstdFlags)
	srv, err := server.New(provider, systemPrompt, cfg.Server.CORSOrigins, logger)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	logger.Printf("listening on %s (provider %s)", cfg.Server.Addr, cfg.LLM.Provider)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}

func newProvider(c config.LLMConfig, apiKey string, cat *catalog.Catalog) (llm.Provider, error) {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "openai":
		if apiKey == "" {
			log.Printf("warn: no API key for openai; chat requests will fail until one is configured")
		}
		p := llm.NewOpenAIProvider(apiKey, c.Model, c.Timeout)
		if c.BaseURL != "" {
			p.SetBaseURL(c.BaseURL)
		}
		return p, nil
	case "offline":
		return llm.NewOfflineProvider(cat), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", c.Provider)
	}
}
