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

// EnvPrefix prefixes every environment override, e.g. LOTKA_HTTP_ADDR.
const EnvPrefix = "LOTKA"

// Config represents the complete Lotka configuration.
type Config struct {
	// Story is the story source: a file, a directory of scene files, an http(s) URL or redis://host/key.
	Story string `mapstructure:"story"`
	// Start is the start scene of directory stories.
	Start string `mapstructure:"start"`
	Debug bool   `mapstructure:"debug"`
	// Format selects the line runner output: "text" or "json".
	Format   string         `mapstructure:"format"`
	Messages MessagesConfig `mapstructure:"messages"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MCP      MCPConfig      `mapstructure:"mcp"`
}

// MessagesConfig overrides the fixed texts. Empty fields keep the built-in text.
type MessagesConfig struct {
	Ended        string `mapstructure:"ended"`
	UnknownScene string `mapstructure:"unknown_scene"`
	LoadFailed   string `mapstructure:"load_failed"`
}

// HTTPConfig controls `lotka serve`.
type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
	// SessionTTL evicts sessions idle for longer. Zero keeps them until deleted.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// RedisConfig holds credentials for redis:// story sources.
type RedisConfig struct {
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MCPConfig controls `lotka mcp`.
type MCPConfig struct {
	// Transport is "stdio" or "sse".
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Story:  "story.json",
		Start:  "start",
		Format: "text",
		HTTP: HTTPConfig{
			Addr:       ":8080",
			Metrics:    true,
			SessionTTL: 30 * time.Minute,
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8081,
		},
	}
}

// New returns a viper instance with defaults, env overrides and the optional
// config file wired. cfgFile may be empty to search the default locations.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("lotka")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// SetDefaults registers the defaults of every key, which also makes each key
// visible to AutomaticEnv during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("story", d.Story)
	v.SetDefault("start", d.Start)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("format", d.Format)

	v.SetDefault("messages.ended", d.Messages.Ended)
	v.SetDefault("messages.unknown_scene", d.Messages.UnknownScene)
	v.SetDefault("messages.load_failed", d.Messages.LoadFailed)

	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.metrics", d.HTTP.Metrics)
	v.SetDefault("http.session_ttl", d.HTTP.SessionTTL)

	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)

	v.SetDefault("mcp.transport", d.MCP.Transport)
	v.SetDefault("mcp.port", d.MCP.Port)
}

// Load reads the configuration from v into a Config struct and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lotka")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lotka"
	}
	return filepath.Join(home, ".config", "lotka")
}
