package main

import (
	"context"
	"fmt"

	"github.com/giuliopime/crossfade/internal/analysis"
	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
	"github.com/urfave/cli/v3"
)

// analysisOutput is the JSON shape of an analyze run.
type analysisOutput struct {
	State         string            `json:"state"`
	Platform      string            `json:"platform,omitempty"`
	AuthPlatform  string            `json:"auth_platform,omitempty"`
	Behaviour     string            `json:"behaviour,omitempty"`
	ID            string            `json:"id,omitempty"`
	Title         string            `json:"title,omitempty"`
	ArtistName    string            `json:"artist_name,omitempty"`
	AlbumTitle    string            `json:"album_title,omitempty"`
	ISRC          string            `json:"isrc,omitempty"`
	PlatformURLs  map[string]string `json:"platform_urls,omitempty"`
	PlatformCount int               `json:"platform_count,omitempty"`
}

// Analyze resolves a track URL, matches it across the other authorized
// platforms and runs the configured behaviour for the source platform.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: track URL", shared.ErrMissingArgument)
	}

	store, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	behaviours := platform.Behaviours{}
	if !cmd.Bool("no-behaviour") {
		behaviours, err = platform.ParseBehaviours(r.config.Behaviours)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
		}
	}

	analyzer := analysis.NewAnalyzer(analysis.AnalyzerOpts{
		Clients:      r.clients,
		Store:        store,
		Actions:      r.actions,
		Behaviours:   behaviours,
		FetchTimeout: r.config.Analysis.FetchTimeout(),
		Logger:       r.logger,
	})

	updates := make(chan analysis.Update, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range updates {
			r.logger.Debug("analysis state", "state", update.State.String())
		}
	}()

	result := analyzer.Analyze(ctx, rawURL, updates)
	close(updates)
	<-done

	if cmd.Bool("json") {
		return r.writeJSON(resultOutput(result), cmd.Bool("pretty"))
	}
	return r.renderResult(result)
}

func resultOutput(result *analysis.Result) analysisOutput {
	out := analysisOutput{State: result.State.String()}

	if result.State == analysis.NeedsAuthorization {
		out.AuthPlatform = result.AuthPlatform.ID()
	}
	if result.State == analysis.CompletedBehaviour {
		out.Behaviour = result.Behaviour.Encode()
	}

	if result.Analysis != nil {
		out.Platform = result.Platform.ID()
		out.ID = result.Analysis.ID
		out.Title = result.Analysis.Title
		out.ArtistName = result.Analysis.ArtistName
		out.AlbumTitle = result.Analysis.AlbumTitle
		out.ISRC = result.Analysis.ISRC
		out.PlatformCount = result.Analysis.PlatformsCount()

		out.PlatformURLs = map[string]string{}
		for _, p := range platform.All() {
			if url := result.Analysis.URLFor(p); url != "" {
				out.PlatformURLs[p.ID()] = url
			}
		}
	}

	return out
}

func (r *Runner) renderResult(result *analysis.Result) error {
	switch result.State {
	case analysis.UnsupportedPlatform:
		return r.writePlainln("This link isn't from a supported platform. Supported: Apple Music, Spotify, SoundCloud and YouTube.")

	case analysis.NeedsAuthorization:
		return r.writePlainln("%s needs credentials before it can be used. Add them to config.toml and retry.",
			result.AuthPlatform.DisplayName())

	case analysis.Failed:
		return fmt.Errorf("analysis failed: %w", result.Err)

	case analysis.CompletedBehaviour:
		r.renderAnalysis(result.Analysis)
		return r.writePlainln("Behaviour completed: %s", result.Behaviour.DisplayName())

	default:
		r.renderAnalysis(result.Analysis)
		if result.Analysis.PlatformsCount() < 2 {
			return r.writePlainln("Tip: add credentials for more platforms to see where else this track is available.")
		}
		return nil
	}
}

func (r *Runner) renderAnalysis(analysis *models.TrackAnalysis) {
	r.writePlainHeader(fmt.Sprintf("%s - %s", analysis.Title, analysis.ArtistName))

	if analysis.AlbumTitle != "" {
		r.writePlain("Album: %s\n", analysis.AlbumTitle)
	}
	if analysis.ISRC != "" {
		r.writePlain("ISRC: %s\n", analysis.ISRC)
	}
	r.writePlain("Analyzed: %s\n\n", analysis.DateAnalyzed.Format("2006-01-02 15:04"))

	for _, p := range platform.All() {
		if url := analysis.URLFor(p); url != "" {
			r.writePlain("%-12s %s\n", p.DisplayName(), url)
		} else {
			r.writePlain("%-12s not available\n", p.DisplayName())
		}
	}
}
