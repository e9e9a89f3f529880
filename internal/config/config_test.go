package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "go.uber.org/zap"

    "github.com/willvelida/tic-tac-toe/internal/ai"
)

func writeFile(t *testing.T, body string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "config.yaml")
    if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
        t.Fatalf("write config: %v", err)
    }
    return path
}

func TestDefaultIsValid(t *testing.T) {
    cfg, err := Load("")
    if err != nil {
        t.Fatalf("Load: %v", err)
    }
    if err := cfg.Validate(); err != nil {
        t.Fatalf("default config invalid: %v", err)
    }
    if tier, _ := cfg.Tier(); tier != ai.Medium {
        t.Fatalf("expected medium default tier, got %v", tier)
    }
}

func TestLoadOverridesDefaults(t *testing.T) {
    path := writeFile(t, `
addr: ":9090"
log_level: debug
seed: 42
default_tier: hard
think_delay:
  min: 10ms
  max: 20ms
`)
    cfg, err := Load(path)
    if err != nil {
        t.Fatalf("Load: %v", err)
    }
    if cfg.Addr != ":9090" || cfg.LogLevel != "debug" || cfg.Seed != 42 || cfg.DefaultTier != "hard" {
        t.Fatalf("unexpected config %+v", cfg)
    }
    if cfg.ThinkDelay.Min != 10*time.Millisecond || cfg.ThinkDelay.Max != 20*time.Millisecond {
        t.Fatalf("unexpected think delay %+v", cfg.ThinkDelay)
    }
    if err := cfg.Validate(); err != nil {
        t.Fatalf("Validate: %v", err)
    }
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
    cfg, err := Load(writeFile(t, "seed: 7\n"))
    if err != nil {
        t.Fatalf("Load: %v", err)
    }
    if cfg.Addr != Default().Addr || cfg.Seed != 7 {
        t.Fatalf("unexpected config %+v", cfg)
    }
}

func TestLoadErrors(t *testing.T) {
    if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
        t.Fatalf("expected error for missing file")
    }
    if _, err := Load(writeFile(t, "addr: [unterminated")); err == nil {
        t.Fatalf("expected parse error")
    }
}

func TestApplyEnv(t *testing.T) {
    env := map[string]string{
        "PORT":             "3000",
        "TTT_LOG_LEVEL":    "warn",
        "TTT_DEFAULT_TIER": "easy",
        "TTT_SEED":         "99",
    }
    lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
    cfg := Default()
    if err := cfg.ApplyEnv(lookup); err != nil {
        t.Fatalf("ApplyEnv: %v", err)
    }
    if cfg.Addr != ":3000" || cfg.LogLevel != "warn" || cfg.DefaultTier != "easy" || cfg.Seed != 99 {
        t.Fatalf("unexpected config %+v", cfg)
    }
    env["TTT_ADDR"] = "127.0.0.1:4000"
    _ = cfg.ApplyEnv(lookup)
    if cfg.Addr != "127.0.0.1:4000" {
        t.Fatalf("TTT_ADDR should win over PORT, got %q", cfg.Addr)
    }
    env["TTT_SEED"] = "many"
    if err := cfg.ApplyEnv(lookup); err == nil {
        t.Fatalf("expected seed parse error")
    }
}

func TestValidateRejects(t *testing.T) {
    cases := map[string]func(*Config){
        "empty addr":   func(c *Config) { c.Addr = "" },
        "bad level":    func(c *Config) { c.LogLevel = "loud" },
        "bad tier":     func(c *Config) { c.DefaultTier = "nightmare" },
        "delay order":  func(c *Config) { c.ThinkDelay = ThinkDelay{Min: time.Second, Max: time.Millisecond} },
        "negative min": func(c *Config) { c.ThinkDelay.Min = -time.Second },
    }
    for name, mutate := range cases {
        t.Run(name, func(t *testing.T) {
            cfg := Default()
            mutate(&cfg)
            if err := cfg.Validate(); err == nil {
                t.Fatalf("expected validation error")
            }
        })
    }
}

func TestNewLogger(t *testing.T) {
    cfg := Default()
    cfg.LogLevel = "error"
    log, err := cfg.NewLogger()
    if err != nil {
        t.Fatalf("NewLogger: %v", err)
    }
    if log.Core().Enabled(zap.DebugLevel) {
        t.Fatalf("debug should be disabled at error level")
    }
}
