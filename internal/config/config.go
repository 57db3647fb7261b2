package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultConfigDir   = ".pairsentry"
	DefaultConfigFile  = "config.json"
	DefaultDBFile      = ".pairsentry/pairsentry.db"
	DefaultDatasetFile = ".pairsentry/crypto_pairs.csv"
)

// Load reads the config file and returns a populated Config. The
// configPath flag may override the default location; environment
// variables override file values (e.g. TELEGRAM_BOT_TOKEN).
func Load(configPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
	}

	setDefaults(v, home)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config yet — defaults apply until `pairsentry onboard` runs.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	expandPaths(&cfg, home)
	return &cfg, nil
}

// Save writes the config to disk as JSON.
func Save(cfg *Config, configPath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising config: %w", err)
	}

	return os.WriteFile(configPath, data, 0o600)
}

// ConfigPath returns the effective config file path.
func ConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(home, DefaultDBFile))
	v.SetDefault("database.dsn", "")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.channel_id", "")
	v.SetDefault("telegram.poll_timeout_sec", 30)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.memory_size", 20)

	v.SetDefault("providers.birdeye_api_key", "")
	v.SetDefault("providers.birdeye_base_url", "https://public-api.birdeye.so")
	v.SetDefault("providers.goplus_base_url", "https://api.gopluslabs.io")

	v.SetDefault("watch.publish_threshold", 98.0)
	v.SetDefault("watch.schedule", "")
	v.SetDefault("watch.min_liquidity", 2000.0)
	v.SetDefault("watch.min_age_minutes", 3)
	v.SetDefault("watch.max_pairs", 100)
	v.SetDefault("watch.dexscreener_base_url", "https://api.dexscreener.com")

	v.SetDefault("dataset.path", filepath.Join(home, DefaultDatasetFile))

	v.SetDefault("notify.webhook_url", "")
}

// expandPaths resolves "~" prefixes left in user-edited configs.
func expandPaths(cfg *Config, home string) {
	cfg.Database.Path = expandHome(cfg.Database.Path, home)
	cfg.Dataset.Path = expandHome(cfg.Dataset.Path, home)
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file")
}
