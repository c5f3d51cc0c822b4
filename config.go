package blog

import "github.com/Hilal-Ahmad786/Blogweb/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrWorkersInvalid          = runtimeconfig.ErrWorkersInvalid
	ErrFrontmatterModeUnknown  = runtimeconfig.ErrFrontmatterModeUnknown
	ErrWordsPerMinuteInvalid   = runtimeconfig.ErrWordsPerMinuteInvalid
	ErrTOCMaxLevelInvalid      = runtimeconfig.ErrTOCMaxLevelInvalid
	ErrExcerptLengthInvalid    = runtimeconfig.ErrExcerptLengthInvalid
	ErrStageNameRequired       = runtimeconfig.ErrStageNameRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCatalogDriverUnknown    = runtimeconfig.ErrCatalogDriverUnknown
	ErrCatalogDSNRequired      = runtimeconfig.ErrCatalogDSNRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	ContentConfig = runtimeconfig.ContentConfig
	MDXConfig     = runtimeconfig.MDXConfig
	CacheConfig   = runtimeconfig.CacheConfig
	CatalogConfig = runtimeconfig.CatalogConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the settings used when no file is supplied.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
