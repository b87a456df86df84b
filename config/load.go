package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys,
// e.g. SHEETSEARCH_PORT or SHEETSEARCH_SEARCH_TOTAL_CAP.
const EnvPrefix = "SHEETSEARCH"

// Load reads the server configuration. path may be empty, in which case only
// defaults and environment variables are used. A missing file at an explicit
// path is an error.
func Load(path string) (ServerConfig, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith reads the configuration through the given viper instance so callers can
// bind command-line flags before loading.
func LoadWith(v *viper.Viper, path string) (ServerConfig, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return ServerConfig{}, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return ServerConfig{}, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ApplyDefaults()

	if problems := cfg.Search.Validate(); len(problems) > 0 {
		return ServerConfig{}, fmt.Errorf("invalid search settings: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("job_workers", DefaultJobWorkers)
	v.SetDefault("search.per_sheet_cap", DefaultPerSheetCap)
	v.SetDefault("search.total_cap", DefaultTotalCap)
	v.SetDefault("search.per_sheet_limit", DefaultPerSheetLimit)
	v.SetDefault("search.top_k_per_sheet", DefaultTopKPerSheet)
	v.SetDefault("search.max_features", DefaultMaxFeatures)
	v.SetDefault("search.sublinear_tf", false)
	v.SetDefault("search.run_semantic_by_default", true)
}
