package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Analysis    AnalysisConfig    `toml:"analysis"`
	Behaviours  map[string]string `toml:"behaviours"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	AppleMusic AppleMusicConfig `toml:"apple_music"`
	Spotify    SpotifyConfig    `toml:"spotify"`
	SoundCloud SoundCloudConfig `toml:"soundcloud"`
	YouTube    YouTubeConfig    `toml:"youtube"`
}

// AppleMusicConfig contains Apple Music API credentials.
//
// The developer token is a signed JWT generated from a MusicKit private key.
type AppleMusicConfig struct {
	DeveloperToken string `toml:"developer_token"`
	Storefront     string `toml:"storefront"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// SoundCloudConfig contains SoundCloud API credentials.
type SoundCloudConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// YouTubeConfig contains YouTube Data API credentials.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AnalysisConfig contains tuning knobs for the track analysis engine.
type AnalysisConfig struct {
	// FetchTimeoutSeconds bounds each per-platform fetch during fan-out
	// so one unresponsive platform cannot stall the whole analysis.
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`

	// MatchThreshold is the minimum combined title/artist similarity
	// score for a fuzzy match to be accepted. Zero means the default.
	MatchThreshold float64 `toml:"match_threshold"`
}

// FetchTimeout returns the per-platform fetch timeout as a [time.Duration], defaulting to 15s.
func (a AnalysisConfig) FetchTimeout() time.Duration {
	if a.FetchTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.FetchTimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
