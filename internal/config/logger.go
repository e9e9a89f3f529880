package config

import "go.uber.org/zap"

// NewLogger builds a production zap logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
    lvl, err := c.Level()
    if err != nil {
        return nil, err
    }
    zc := zap.NewProductionConfig()
    zc.Level = zap.NewAtomicLevelAt(lvl)
    return zc.Build()
}
