package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
)

func TestAuthorizationURL(t *testing.T) {
	t.Run("spotify builds an OAuth2 authorization URL", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = "my-client-id"
		config.Credentials.Spotify.RedirectURI = "http://localhost:9999/cb"

		got, err := authorizationURL(platform.Spotify, config)
		if err != nil {
			t.Fatalf("authorizationURL returned error: %v", err)
		}

		if !strings.HasPrefix(got, "https://accounts.spotify.com/authorize?") {
			t.Errorf("URL = %q, want the accounts.spotify.com authorize endpoint", got)
		}
		if !strings.Contains(got, "client_id=my-client-id") {
			t.Errorf("URL = %q, missing client id", got)
		}
		if !strings.Contains(got, "redirect_uri=http%3A%2F%2Flocalhost%3A9999%2Fcb") {
			t.Errorf("URL = %q, missing encoded redirect URI", got)
		}
		if !strings.Contains(got, "response_type=code") {
			t.Errorf("URL = %q, missing response type", got)
		}
	})

	t.Run("spotify defaults the redirect URI", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = "my-client-id"
		config.Credentials.Spotify.RedirectURI = ""

		got, err := authorizationURL(platform.Spotify, config)
		if err != nil {
			t.Fatalf("authorizationURL returned error: %v", err)
		}
		if !strings.Contains(got, "redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fcallback") {
			t.Errorf("URL = %q, want the default redirect URI", got)
		}
	})

	t.Run("spotify without a client id", func(t *testing.T) {
		config := shared.DefaultConfig()

		_, err := authorizationURL(platform.Spotify, config)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("error = %v, want ErrMissingCredentials", err)
		}
	})

	t.Run("token based platforms link their dashboards", func(t *testing.T) {
		config := shared.DefaultConfig()

		tests := []struct {
			platform platform.Platform
			wantHost string
		}{
			{platform.AppleMusic, "developer.apple.com"},
			{platform.SoundCloud, "soundcloud.com"},
			{platform.YouTube, "console.cloud.google.com"},
		}

		for _, tt := range tests {
			got, err := authorizationURL(tt.platform, config)
			if err != nil {
				t.Fatalf("authorizationURL(%s) returned error: %v", tt.platform.ID(), err)
			}
			if !strings.Contains(got, tt.wantHost) {
				t.Errorf("authorizationURL(%s) = %q, want host %s", tt.platform.ID(), got, tt.wantHost)
			}
		}
	})
}

func TestAuthCommandRegistersURLSubcommand(t *testing.T) {
	runner := NewRunner(RunnerOpts{})
	auth := authCommand(runner)

	names := map[string]bool{}
	for _, c := range auth.Commands {
		names[c.Name] = true
	}

	for _, want := range []string{"status", "url", "behaviours"} {
		if !names[want] {
			t.Errorf("auth command missing %q subcommand", want)
		}
	}
}
