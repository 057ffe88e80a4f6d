package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/giuliopime/crossfade/internal/clients"
	"github.com/giuliopime/crossfade/internal/matching"
	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := resolveConfig("config.toml", logger)

	matcher := matching.Matcher{Threshold: config.Analysis.MatchThreshold}
	registry := clients.Registry{
		platform.AppleMusic: clients.NewAppleMusicClient(config.Credentials.AppleMusic, matcher),
		platform.Spotify:    clients.NewSpotifyClient(config.Credentials.Spotify, matcher),
		platform.SoundCloud: clients.NewSoundCloudClient(config.Credentials.SoundCloud, matcher),
		platform.YouTube:    clients.NewYouTubeClient(config.Credentials.YouTube, matcher),
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Clients: registry,
		Logger:  logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:     "crossfade",
		Usage:    "Resolve a music track's identity across streaming platforms",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	runApp(app, logger)
}

// resolveConfig loads the config file at path when it exists, falling
// back to the embedded defaults. Only a missing file falls back
// silently; a file that fails to parse is reported first.
func resolveConfig(path string, logger *log.Logger) *shared.Config {
	if _, err := os.Stat(path); err != nil {
		return shared.DefaultConfig()
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		logger.Warn("ignoring config file, using defaults", "path", path, "err", err)
		return shared.DefaultConfig()
	}

	return config
}

func runApp(app *cli.Command, logger *log.Logger) {
	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
