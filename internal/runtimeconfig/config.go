package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrLoggingProviderUnknown reports an unrecognised logging provider name.
var ErrLoggingProviderUnknown = errors.New("publisher config: logging provider is invalid")

// ErrLoggingLevelInvalid reports an unrecognised logging level.
var ErrLoggingLevelInvalid = errors.New("publisher config: logging level is invalid")

// ErrLoggingFormatInvalid reports an unrecognised logging format.
var ErrLoggingFormatInvalid = errors.New("publisher config: logging format is invalid")

// ErrEventsProviderUnknown reports an unrecognised event bus provider name.
var ErrEventsProviderUnknown = errors.New("publisher config: events provider is invalid")

// ErrEventsRedisAddrRequired ensures the redis bus only builds with an address.
var ErrEventsRedisAddrRequired = errors.New("publisher config: events redis address is required when the redis provider is selected")

// ErrCacheRequiresStorage ensures repository caching only wraps a real store.
var ErrCacheRequiresStorage = errors.New("publisher config: repository cache requires storage to be configured")

var ErrPacingIntervalInvalid = errors.New("publisher config: pacing interval must be zero or positive")
var ErrCancelTimeoutInvalid = errors.New("publisher config: cancel timeout must be positive")
var ErrSettleDelayInvalid = errors.New("publisher config: settle delay must be zero or positive")

// Config aggregates runtime bindings for the scheduling engine. Fields use
// simple types so host applications can map their own configuration onto it.
type Config struct {
	Storage    StorageConfig
	Cache      CacheConfig
	Events     EventsConfig
	Logging    LoggingConfig
	Scheduling SchedulingConfig
}

// StorageConfig selects the backing store for the local content cache. An
// empty DSN keeps the engine on in-memory repositories.
type StorageConfig struct {
	DSN string
}

// CacheConfig toggles read-through caching on the bun repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// EventsConfig selects the event bus implementation.
type EventsConfig struct {
	Provider  string
	RedisAddr string
	EventTTL  time.Duration
}

// NormalizedProvider returns the provider name in canonical form. Validation
// and wiring both dispatch on this value so accepted spellings never fall
// through a switch.
func (c EventsConfig) NormalizedProvider() string {
	return strings.ToLower(strings.TrimSpace(c.Provider))
}

// LoggingConfig wires the logging provider used for module loggers.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// NormalizedProvider returns the provider name in canonical form.
func (c LoggingConfig) NormalizedProvider() string {
	return strings.ToLower(strings.TrimSpace(c.Provider))
}

// SchedulingConfig carries the pacing knobs of the bulk orchestrator and the
// unschedule path. All three have working defaults; tests shrink them so runs
// do not sleep for real.
type SchedulingConfig struct {
	// PacingInterval is the fixed delay inserted between per-item gateway calls.
	PacingInterval time.Duration
	// CancelTimeout bounds the best-effort remote cancellation call.
	CancelTimeout time.Duration
	// SettleDelay is how long reconciliation waits after a refresh before
	// broadcasting the completion event.
	SettleDelay time.Duration
}

// DefaultConfig returns the baseline configuration: in-memory storage and
// events, logging disabled, production pacing.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Events: EventsConfig{
			Provider: "memory",
			EventTTL: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
		Scheduling: SchedulingConfig{
			PacingInterval: 500 * time.Millisecond,
			CancelTimeout:  10 * time.Second,
			SettleDelay:    time.Second,
		},
	}
}

// Validate reports the first inconsistency in the configuration.
func (c Config) Validate() error {
	if c.Cache.Enabled && strings.TrimSpace(c.Storage.DSN) == "" {
		return ErrCacheRequiresStorage
	}

	switch c.Events.NormalizedProvider() {
	case "", "memory":
	case "redis":
		if strings.TrimSpace(c.Events.RedisAddr) == "" {
			return ErrEventsRedisAddrRequired
		}
	default:
		return ErrEventsProviderUnknown
	}

	if c.Logging.Enabled {
		switch c.Logging.NormalizedProvider() {
		case "", "gologger", "noop":
		default:
			return ErrLoggingProviderUnknown
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
		case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		default:
			return ErrLoggingLevelInvalid
		}
		switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
		case "", "json", "console", "pretty":
		default:
			return ErrLoggingFormatInvalid
		}
	}

	if c.Scheduling.PacingInterval < 0 {
		return ErrPacingIntervalInvalid
	}
	if c.Scheduling.CancelTimeout <= 0 {
		return ErrCancelTimeoutInvalid
	}
	if c.Scheduling.SettleDelay < 0 {
		return ErrSettleDelayInvalid
	}

	return nil
}
