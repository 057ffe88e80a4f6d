// package formatter provides functions to export analyzed track history
// to various formats (CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/platform"
)

// ExportToCSV converts analyses to CSV with one row per track and one
// column per platform URL.
func ExportToCSV(analyses []*models.TrackAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "ISRC", "Apple Music", "Spotify", "SoundCloud", "YouTube", "Platforms", "Analyzed At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, analysis := range analyses {
		record := []string{
			analysis.ID,
			analysis.Title,
			analysis.ArtistName,
			analysis.AlbumTitle,
			analysis.ISRC,
			analysis.AppleMusicURL,
			analysis.SpotifyURL,
			analysis.SoundCloudURL,
			analysis.YouTubeURL,
			strconv.Itoa(analysis.PlatformsCount()),
			analysis.DateAnalyzed.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts analyses to a Markdown listing.
func ExportToMarkdown(analyses []*models.TrackAnalysis) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Analyzed tracks\n\n")
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(analyses)))

	for i, analysis := range analyses {
		albumPart := ""
		if analysis.AlbumTitle != "" {
			albumPart = fmt.Sprintf(" (%s)", analysis.AlbumTitle)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, analysis.ArtistName, analysis.Title, albumPart))

		for _, p := range platform.All() {
			if url := analysis.URLFor(p); url != "" {
				buf.WriteString(fmt.Sprintf("   - [%s](%s)\n", p.DisplayName(), url))
			}
		}
	}

	return buf.Bytes(), nil
}

// trackAnalysisJSON is the serialized shape of one analysis record.
type trackAnalysisJSON struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ArtistName    string `json:"artist_name"`
	AlbumTitle    string `json:"album_title,omitempty"`
	ArtworkURL    string `json:"artwork_url,omitempty"`
	ISRC          string `json:"isrc,omitempty"`
	AppleMusicURL string `json:"apple_music_url,omitempty"`
	SpotifyURL    string `json:"spotify_url,omitempty"`
	SoundCloudURL string `json:"soundcloud_url,omitempty"`
	YouTubeURL    string `json:"youtube_url,omitempty"`
	DateAnalyzed  string `json:"date_analyzed"`
}

// ExportToJSON converts analyses to pretty-printed JSON.
func ExportToJSON(analyses []*models.TrackAnalysis) ([]byte, error) {
	out := make([]trackAnalysisJSON, len(analyses))
	for i, analysis := range analyses {
		out[i] = trackAnalysisJSON{
			ID:            analysis.ID,
			Title:         analysis.Title,
			ArtistName:    analysis.ArtistName,
			AlbumTitle:    analysis.AlbumTitle,
			ArtworkURL:    analysis.ArtworkURL,
			ISRC:          analysis.ISRC,
			AppleMusicURL: analysis.AppleMusicURL,
			SpotifyURL:    analysis.SpotifyURL,
			SoundCloudURL: analysis.SoundCloudURL,
			YouTubeURL:    analysis.YouTubeURL,
			DateAnalyzed:  analysis.DateAnalyzed.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return data, nil
}

// WriteExport writes analyses to path in the requested format
// ("csv", "markdown" or "json").
func WriteExport(analyses []*models.TrackAnalysis, format, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(analyses)
	case "markdown", "md":
		data, err = ExportToMarkdown(analyses)
	case "json":
		data, err = ExportToJSON(analyses)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
