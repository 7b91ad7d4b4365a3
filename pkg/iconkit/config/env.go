package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings holds process-level iconkit options.
type Settings struct {
	// HTTPTimeout bounds a single icon fetch.
	HTTPTimeout time.Duration `env:"ICONKIT_HTTP_TIMEOUT" envDefault:"30s"`
	// UserAgent is sent with every fetch.
	UserAgent string `env:"ICONKIT_USER_AGENT" envDefault:"iconkit"`
	// MaxBodyBytes caps the size of a fetched document.
	MaxBodyBytes int64 `env:"ICONKIT_MAX_BODY_BYTES" envDefault:"4194304"`
	// BaseURL resolves relative icon URLs. Empty rejects relative URLs.
	BaseURL string `env:"ICONKIT_BASE_URL"`
	// AllowedSchemes lists the URL schemes icons may be fetched from.
	AllowedSchemes []string `env:"ICONKIT_ALLOWED_SCHEMES" envDefault:"https,http" envSeparator:","`
	// CachePath enables the SQLite document cache at this path.
	CachePath string `env:"ICONKIT_CACHE_PATH"`
	// MaxConcurrentFetches limits parallel icon set fetches. Zero is unlimited.
	MaxConcurrentFetches int `env:"ICONKIT_MAX_CONCURRENT_FETCHES" envDefault:"0"`
	// ManifestPath is loaded into the registry when set.
	ManifestPath string `env:"ICONKIT_MANIFEST"`
	// Metrics enables OpenTelemetry metrics.
	Metrics bool `env:"ICONKIT_METRICS" envDefault:"false"`
	// Tracing enables OpenTelemetry tracing.
	Tracing bool `env:"ICONKIT_TRACING" envDefault:"false"`
}

// FromEnv loads Settings from environment variables.
func FromEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// FromEnvMap loads Settings from an explicit variable map instead of the
// process environment.
func FromEnvMap(vars map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
