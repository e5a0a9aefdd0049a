package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/measures/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyPrecision  = "precision"
	cfgKeyHistory    = "history"
	cfgKeyCategories = "categories"

	// Environment overrides for presentation settings. Directory overrides
	// are handled by internal/paths.
	envPrecision = "MEASURES_PRECISION"
	envHistory   = "MEASURES_HISTORY"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml or config directory is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyPrecision, types.DefaultPrecision)
	v.SetDefault(cfgKeyHistory, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.BindEnv(cfgKeyPrecision, envPrecision); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv(cfgKeyHistory, envHistory); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// decodeConfig extracts and validates a types.Config from v.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		Backend:   v.GetString(cfgKeyBackend),
		DataDir:   v.GetString(cfgKeyDataDir),
		Precision: v.GetInt(cfgKeyPrecision),
		History:   v.GetBool(cfgKeyHistory),
	}
	if err := v.UnmarshalKey(cfgKeyCategories, &cfg.Categories); err != nil {
		return types.Config{}, fmt.Errorf("decode categories: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
