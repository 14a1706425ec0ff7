package reconciler

import (
	"time"

	"github.com/smallbiznis/lodgera/internal/config"
)

// Config controls the reconciliation sweep interval and per-job batch size.
type Config struct {
	Enabled     bool
	RunInterval time.Duration
	BatchSize   int
	JobTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		RunInterval: time.Minute,
		BatchSize:   50,
		JobTimeout:  30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}

// ProvideConfig maps the application-level reconciler settings onto the
// sweep configuration.
func ProvideConfig(cfg config.Config) Config {
	return Config{
		Enabled:     cfg.Reconciler.Enabled,
		RunInterval: time.Duration(cfg.Reconciler.RunInterval) * time.Second,
		BatchSize:   cfg.Reconciler.BatchSize,
	}.withDefaults()
}
