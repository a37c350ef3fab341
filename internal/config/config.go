package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration for both binaries.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Client   ClientConfig   `mapstructure:"client"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
}

// ServerConfig holds chat backend settings.
type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	ContextPath string   `mapstructure:"context_path"`
}

// LLMConfig holds provider settings.
type LLMConfig struct {
	Provider  string        `mapstructure:"provider"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ClientConfig holds settings of the terminal client.
type ClientConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
	HistorySize int    `mapstructure:"history_size"`
}

// Load reads configuration from file and env. Env var overrides use prefix ASSETIQ_.
// A .env file in the working directory is applied to the environment first.
func Load() (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return load(os.Getenv("ASSETIQ_CONFIG"))
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return load(path)
}

func load(cfgPath string) (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.context_path", "")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("client.api_url", "http://localhost:8000")
	v.SetDefault("client.timeout", "90s")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "assetiq", "assetiq.db"))
	v.SetDefault("ui.catalog_path", "")
	v.SetDefault("ui.history_size", 5)

	v.SetConfigType("toml")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "assetiq"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ASSETIQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// CORS_ORIGINS is accepted without the prefix too
	_ = v.BindEnv("server.cors_origins", "ASSETIQ_SERVER_CORS_ORIGINS", "CORS_ORIGINS")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Server.CORSOrigins = splitOrigins(c.Server.CORSOrigins)
	return c, nil
}

// LoadDotEnv copies KEY=VALUE pairs from path into the process environment,
// overriding existing values. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, key := range v.AllKeys() {
		if err := os.Setenv(strings.ToUpper(key), v.GetString(key)); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// ResolveAPIKey returns the LLM key from the configured env var, then lookup,
// then the config file.
func (c LLMConfig) ResolveAPIKey(lookup func(provider string) (string, error)) string {
	env := strings.TrimSpace(c.APIKeyEnv)
	if env == "" {
		env = "OPENAI_API_KEY"
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if lookup != nil {
		if k, err := lookup(c.Provider); err == nil && k != "" {
			return k
		}
	}
	return strings.TrimSpace(c.APIKey)
}

func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
