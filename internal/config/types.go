package config

// Config is the root configuration structure for pairsentry.
// Serialised to ~/.pairsentry/config.json.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"  json:"database"`
	Telegram  TelegramConfig  `mapstructure:"telegram"  json:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"    json:"gemini"`
	Providers ProvidersConfig `mapstructure:"providers" json:"providers"`
	Watch     WatchConfig     `mapstructure:"watch"     json:"watch"`
	Dataset   DatasetConfig   `mapstructure:"dataset"   json:"dataset"`
	Notify    NotifyConfig    `mapstructure:"notify"    json:"notify"`
}

// DatabaseConfig controls the storage backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "mysql".
	Driver string `mapstructure:"driver" json:"driver"`
	// Path is the SQLite file path (expanded at runtime).
	Path string `mapstructure:"path"   json:"path"`
	// DSN is the MySQL data source name (used when Driver == "mysql").
	DSN string `mapstructure:"dsn"    json:"dsn"`
}

// TelegramConfig holds the bot credentials and the publish target.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token" json:"bot_token"`
	// ChannelID is the channel that qualifying pairs are published to.
	ChannelID string `mapstructure:"channel_id" json:"channel_id"`
	// PollTimeoutSec is the long-poll timeout for getUpdates.
	PollTimeoutSec int `mapstructure:"poll_timeout_sec" json:"poll_timeout_sec"`
}

// GeminiConfig controls the assistant's language-model backend.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" json:"api_key"`
	Model  string `mapstructure:"model"   json:"model"`
	// MemorySize is the number of past exchanges each model keeps.
	MemorySize int `mapstructure:"memory_size" json:"memory_size"`
}

// ProvidersConfig holds the security data source settings. Either
// provider may be left unconfigured; it then reports no observations
// rather than failing the evaluation.
type ProvidersConfig struct {
	BirdeyeAPIKey  string `mapstructure:"birdeye_api_key"  json:"birdeye_api_key"`
	BirdeyeBaseURL string `mapstructure:"birdeye_base_url" json:"birdeye_base_url"`
	GoPlusBaseURL  string `mapstructure:"goplus_base_url"  json:"goplus_base_url"`
}

// WatchConfig controls the evaluation cycle.
type WatchConfig struct {
	// PublishThreshold is the minimum score (exclusive) for publishing,
	// on the 0-100 scale.
	PublishThreshold float64 `mapstructure:"publish_threshold" json:"publish_threshold"`
	// Schedule is a cron expression for recurring cycles; empty means
	// one-shot only.
	Schedule string `mapstructure:"schedule" json:"schedule"`
	// MinLiquidity filters out pairs below this liquidity (USD).
	MinLiquidity float64 `mapstructure:"min_liquidity" json:"min_liquidity"`
	// MinAgeMinutes filters out pairs younger than this.
	MinAgeMinutes int `mapstructure:"min_age_minutes" json:"min_age_minutes"`
	// MaxPairs caps how many pairs one cycle evaluates.
	MaxPairs int `mapstructure:"max_pairs" json:"max_pairs"`
	// DexscreenerBaseURL overrides the listing API endpoint.
	DexscreenerBaseURL string `mapstructure:"dexscreener_base_url" json:"dexscreener_base_url"`
}

// DatasetConfig controls the flat CSV dataset.
type DatasetConfig struct {
	// Path is the CSV file location (expanded at runtime).
	Path string `mapstructure:"path" json:"path"`
}

// NotifyConfig configures additional publish channels beyond Telegram.
type NotifyConfig struct {
	// WebhookURL receives a JSON POST per published pair when set.
	WebhookURL string `mapstructure:"webhook_url" json:"webhook_url"`
}
