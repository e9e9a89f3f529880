package config

import (
    "errors"
    "fmt"
    "os"
    "strconv"
    "time"

    "go.uber.org/zap/zapcore"
    "gopkg.in/yaml.v2"

    "github.com/willvelida/tic-tac-toe/internal/ai"
)

// ThinkDelay bounds the automated mover's pause.
type ThinkDelay struct {
    Min time.Duration `yaml:"min"`
    Max time.Duration `yaml:"max"`
}

// Config is the runtime configuration shared by the entry points.
type Config struct {
    Addr        string     `yaml:"addr"`
    LogLevel    string     `yaml:"log_level"`
    Seed        int64      `yaml:"seed"`
    DefaultTier string     `yaml:"default_tier"`
    ThinkDelay  ThinkDelay `yaml:"think_delay"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
    return Config{
        Addr:        ":8080",
        LogLevel:    "info",
        DefaultTier: ai.Medium.String(),
        ThinkDelay:  ThinkDelay{Min: 500 * time.Millisecond, Max: 1500 * time.Millisecond},
    }
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        return cfg, nil
    }
    raw, err := os.ReadFile(path)
    if err != nil {
        return cfg, fmt.Errorf("read config: %w", err)
    }
    if err := yaml.Unmarshal(raw, &cfg); err != nil {
        return cfg, fmt.Errorf("parse config %s: %w", path, err)
    }
    return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
    if lookup == nil {
        lookup = os.LookupEnv
    }
    if v, ok := lookup("PORT"); ok && v != "" {
        c.Addr = ":" + v
    }
    if v, ok := lookup("TTT_ADDR"); ok && v != "" {
        c.Addr = v
    }
    if v, ok := lookup("TTT_LOG_LEVEL"); ok && v != "" {
        c.LogLevel = v
    }
    if v, ok := lookup("TTT_DEFAULT_TIER"); ok && v != "" {
        c.DefaultTier = v
    }
    if v, ok := lookup("TTT_SEED"); ok && v != "" {
        seed, err := strconv.ParseInt(v, 10, 64)
        if err != nil {
            return fmt.Errorf("TTT_SEED: %w", err)
        }
        c.Seed = seed
    }
    return nil
}

// Validate checks the values that later stages would otherwise reject.
func (c Config) Validate() error {
    if c.Addr == "" {
        return errors.New("addr must not be empty")
    }
    if _, err := c.Level(); err != nil {
        return err
    }
    if _, err := c.Tier(); err != nil {
        return err
    }
    if c.ThinkDelay.Min < 0 || c.ThinkDelay.Max < c.ThinkDelay.Min {
        return fmt.Errorf("think_delay: need 0 <= min <= max, got %v..%v", c.ThinkDelay.Min, c.ThinkDelay.Max)
    }
    return nil
}

// Tier parses DefaultTier.
func (c Config) Tier() (ai.Tier, error) { return ai.ParseTier(c.DefaultTier) }

// Level parses LogLevel for zap.
func (c Config) Level() (zapcore.Level, error) {
    var lvl zapcore.Level
    if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
        return lvl, fmt.Errorf("log_level: %w", err)
    }
    return lvl, nil
}
