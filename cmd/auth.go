package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultSpotifyRedirectURI = "http://localhost:8080/callback"

// AuthStatus reports which platforms hold usable credentials.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.writePlainHeader("Platform credentials")

	for _, p := range platform.All() {
		status := "missing"
		if client, ok := r.clients.For(p); ok && client.IsAuthorized() {
			status = "configured"
		}
		r.writePlain("%-12s %s\n", p.DisplayName(), status)
	}

	r.writePlain("\nCredentials live in config.toml; run 'crossfade setup config' to create one.\n")
	return nil
}

// AuthURL prints (or opens) the URL where a platform's credentials are
// authorized or created.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("platform")
	if id == "" {
		return fmt.Errorf("%w: platform id", shared.ErrMissingArgument)
	}

	p, err := platform.Parse(id)
	if err != nil {
		return err
	}

	authURL, err := authorizationURL(p, r.config)
	if err != nil {
		return err
	}

	if cmd.Bool("open") {
		if err := r.actions.Open(authURL); err != nil {
			return err
		}
		return r.writePlainln("Opened %s", authURL)
	}

	return r.writePlainln("%s", authURL)
}

// authorizationURL resolves the platform's authorization endpoint.
//
// Spotify gets a real OAuth2 authorization URL built from the configured
// client id and redirect URI; the other platforms authenticate with
// static tokens or keys, so their credential dashboards are linked instead.
func authorizationURL(p platform.Platform, config *shared.Config) (string, error) {
	switch p {
	case platform.Spotify:
		creds := config.Credentials.Spotify
		if creds.ClientID == "" {
			return "", fmt.Errorf("%w: set credentials.spotify.client_id in config.toml first", shared.ErrMissingCredentials)
		}

		redirectURI := creds.RedirectURI
		if redirectURI == "" {
			redirectURI = defaultSpotifyRedirectURI
		}

		query := url.Values{}
		query.Set("client_id", creds.ClientID)
		query.Set("response_type", "code")
		query.Set("redirect_uri", redirectURI)
		return "https://accounts.spotify.com/authorize?" + query.Encode(), nil

	case platform.AppleMusic:
		return "https://developer.apple.com/account/resources/authkeys/list", nil
	case platform.SoundCloud:
		return "https://soundcloud.com/you/apps", nil
	case platform.YouTube:
		return "https://console.cloud.google.com/apis/credentials", nil
	default:
		return "", fmt.Errorf("%w: %s", shared.ErrUnsupportedPlatform, p.ID())
	}
}

// AuthBehaviours prints the configured post-analysis behaviour per platform.
func (r *Runner) AuthBehaviours(ctx context.Context, cmd *cli.Command) error {
	behaviours, err := platform.ParseBehaviours(r.config.Behaviours)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.writePlainHeader("Post-analysis behaviours")
	for _, p := range platform.All() {
		r.writePlain("%-12s %s\n", p.DisplayName(), behaviours.For(p).DisplayName())
	}

	return nil
}
