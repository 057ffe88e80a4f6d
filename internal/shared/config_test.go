package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[credentials.apple_music]
developer_token = "token"
storefront = "it"

[credentials.spotify]
client_id = "id"
client_secret = "secret"

[database]
path = "crossfade.db"
max_open_conns = 5

[analysis]
fetch_timeout_seconds = 30
match_threshold = 0.7

[behaviours]
spotify = "copy:apple_music"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Credentials.AppleMusic.DeveloperToken != "token" {
		t.Errorf("DeveloperToken = %q", config.Credentials.AppleMusic.DeveloperToken)
	}
	if config.Credentials.AppleMusic.Storefront != "it" {
		t.Errorf("Storefront = %q, want it", config.Credentials.AppleMusic.Storefront)
	}
	if config.Credentials.Spotify.ClientID != "id" || config.Credentials.Spotify.ClientSecret != "secret" {
		t.Errorf("unexpected spotify credentials: %+v", config.Credentials.Spotify)
	}
	if config.Database.Path != "crossfade.db" {
		t.Errorf("Database.Path = %q", config.Database.Path)
	}
	if config.Analysis.FetchTimeout() != 30*time.Second {
		t.Errorf("FetchTimeout() = %v, want 30s", config.Analysis.FetchTimeout())
	}
	if config.Analysis.MatchThreshold != 0.7 {
		t.Errorf("MatchThreshold = %v, want 0.7", config.Analysis.MatchThreshold)
	}
	if config.Behaviours["spotify"] != "copy:apple_music" {
		t.Errorf("Behaviours[spotify] = %q", config.Behaviours["spotify"])
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrMissingConfig) {
		t.Errorf("error = %v, want ErrMissingConfig", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestFetchTimeoutDefault(t *testing.T) {
	var a AnalysisConfig
	if a.FetchTimeout() != 15*time.Second {
		t.Errorf("FetchTimeout() = %v, want 15s default", a.FetchTimeout())
	}
}

func TestDefaultConfigParses(t *testing.T) {
	config := DefaultConfig()

	if config.Database.Path == "" {
		t.Error("default config has no database path")
	}
	for _, id := range []string{"apple_music", "spotify", "soundcloud", "youtube"} {
		if _, ok := config.Behaviours[id]; !ok {
			t.Errorf("default config missing behaviour for %s", id)
		}
	}
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("CreateConfigFile returned error: %v", err)
	}

	if _, err := LoadConfig(path); err != nil {
		t.Errorf("generated config does not load: %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || b == "" {
		t.Fatal("GenerateID returned empty string")
	}
	if a == b {
		t.Error("GenerateID returned duplicate ids")
	}
}
