package publisher

import "github.com/goliatone/go-publisher/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrEventsProviderUnknown   = runtimeconfig.ErrEventsProviderUnknown
	ErrEventsRedisAddrRequired = runtimeconfig.ErrEventsRedisAddrRequired
	ErrCacheRequiresStorage    = runtimeconfig.ErrCacheRequiresStorage
	ErrPacingIntervalInvalid   = runtimeconfig.ErrPacingIntervalInvalid
	ErrCancelTimeoutInvalid    = runtimeconfig.ErrCancelTimeoutInvalid
	ErrSettleDelayInvalid      = runtimeconfig.ErrSettleDelayInvalid
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	EventsConfig     = runtimeconfig.EventsConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
	SchedulingConfig = runtimeconfig.SchedulingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
