package service

import (
	"github.com/qscan-dev/qscan/domain"
	"github.com/qscan-dev/qscan/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.AnalyzeRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return c.configToRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.AnalyzeRequest {
	return c.configToRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file settings. CLI
// values win whenever they differ from the zero value.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.AnalyzeRequest, override *domain.AnalyzeRequest) *domain.AnalyzeRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base

	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ShowDetails {
		merged.ShowDetails = override.ShowDetails
	}
	if override.SortBy != "" {
		merged.SortBy = override.SortBy
	}
	if override.IncludeSmells || override.IncludeRefactors || override.IncludeComplexity {
		merged.IncludeSmells = override.IncludeSmells
		merged.IncludeRefactors = override.IncludeRefactors
		merged.IncludeComplexity = override.IncludeComplexity
	}
	if override.Language != "" {
		merged.Language = override.Language
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if override.Recursive {
		merged.Recursive = override.Recursive
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	return &merged
}

// configToRequest converts file configuration into request defaults
func (c *ConfigurationLoaderImpl) configToRequest(cfg *config.Config) *domain.AnalyzeRequest {
	return &domain.AnalyzeRequest{
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		ShowDetails:     cfg.Output.ShowDetails,
		SortBy:          domain.SortCriteria(cfg.Output.SortBy),
		Language:        cfg.Analysis.Language,
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}
}
