package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// It is constructed once at startup and read-only afterwards.
type Config struct {
	Port string
	Env  string

	// Hex-encoded Ed25519 public key used to verify webhook signatures.
	DiscordPublicKey string

	Misskey MisskeyConfig
	Ad      AdConfig
}

// MisskeyConfig holds settings for the remote Misskey instance.
type MisskeyConfig struct {
	URL      string
	Token    string
	FolderID string
	Timeout  time.Duration
}

// AdConfig controls how advertisement records are built.
type AdConfig struct {
	// Place is the display slot used when the command does not supply one.
	Place string
	// ReuploadImage selects re-hosting the attachment on the Misskey drive
	// instead of linking the original attachment URL.
	ReuploadImage bool
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DiscordPublicKey: os.Getenv("DISCORD_PUBLIC_KEY"),
		Misskey: MisskeyConfig{
			URL:      getEnv("MISSKEY_URL", "https://key.tpc3.org"),
			Token:    os.Getenv("MISSKEY_TOKEN"),
			FolderID: os.Getenv("MISSKEY_FOLDER_ID"),
			Timeout:  getDuration("MISSKEY_TIMEOUT", 30*time.Second),
		},
		Ad: AdConfig{
			Place:         getEnv("AD_PLACE", "horizontal"),
			ReuploadImage: getEnv("AD_REUPLOAD_IMAGE", "true") == "true",
		},
	}

	// In production, require the verification key and API token
	if cfg.Env == "production" {
		if cfg.DiscordPublicKey == "" {
			panic("DISCORD_PUBLIC_KEY is required in production")
		}
		if cfg.Misskey.Token == "" {
			panic("MISSKEY_TOKEN is required in production")
		}
		if cfg.Ad.ReuploadImage && cfg.Misskey.FolderID == "" {
			panic("MISSKEY_FOLDER_ID is required when AD_REUPLOAD_IMAGE is enabled")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
