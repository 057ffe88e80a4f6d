package main

import (
	"context"
	"fmt"

	"github.com/giuliopime/crossfade/internal/formatter"
	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints analyzed tracks, most recently analyzed first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	analyses, err := store.Query(cmd.String("filter"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON(analyses)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	}

	if len(analyses) == 0 {
		return r.writePlainln("No analyzed tracks yet. Run 'crossfade analyze <url>' first.")
	}

	r.writePlainHeader(fmt.Sprintf("Analyzed tracks (%d)", len(analyses)))
	for _, analysis := range analyses {
		line := fmt.Sprintf("%s - %s", analysis.ArtistName, analysis.Title)
		if analysis.AlbumTitle != "" {
			line += fmt.Sprintf(" (%s)", analysis.AlbumTitle)
		}
		r.writePlain("%s\n", line)
		r.writePlain("  id: %s  platforms: %d  analyzed: %s\n",
			analysis.ID, analysis.PlatformsCount(), analysis.DateAnalyzed.Format("2006-01-02 15:04"))
	}

	return nil
}

// HistoryShow prints one analyzed track with its per-platform links.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: analysis id", shared.ErrMissingArgument)
	}

	store, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	analysis, err := store.Get(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON([]*models.TrackAnalysis{analysis})
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	}

	r.renderAnalysis(analysis)
	return nil
}

// HistoryDelete removes one analyzed track by id.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: analysis id", shared.ErrMissingArgument)
	}

	store, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	if err := store.Delete(id); err != nil {
		return err
	}

	return r.writePlainln("Deleted %s", id)
}

// HistoryExport writes the (optionally filtered) history to a file.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}

	analyses, err := store.Query(cmd.String("filter"))
	if err != nil {
		return err
	}

	format := cmd.String("format")
	path := cmd.String("output")
	if err := formatter.WriteExport(analyses, format, path); err != nil {
		return err
	}

	return r.writePlainln("Exported %d tracks to %s (%s)", len(analyses), path, format)
}
