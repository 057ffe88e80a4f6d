package formatter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giuliopime/crossfade/internal/models"
)

func sampleAnalyses() []*models.TrackAnalysis {
	return []*models.TrackAnalysis{
		{
			ID:           "spotify:abc",
			Title:        "Hysteria",
			ArtistName:   "Muse",
			AlbumTitle:   "Absolution",
			ISRC:         "GBAHT0300303",
			SpotifyURL:   "https://open.spotify.com/track/abc",
			YouTubeURL:   "https://www.youtube.com/watch?v=xyz",
			DateAnalyzed: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            "apple_music:42",
			Title:         "Starlight",
			ArtistName:    "Muse",
			AppleMusicURL: "https://music.apple.com/us/album/x?i=42",
			DateAnalyzed:  time.Date(2026, 5, 2, 11, 30, 0, 0, time.UTC),
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleAnalyses())
	if err != nil {
		t.Fatalf("ExportToCSV returned error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("CSV has %d rows, want header plus 2 records", len(records))
	}
	if records[0][0] != "ID" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "Hysteria" || records[1][9] != "2" {
		t.Errorf("first record = %v", records[1])
	}
	if records[2][9] != "1" {
		t.Errorf("second record platform count = %q, want 1", records[2][9])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleAnalyses())
	if err != nil {
		t.Fatalf("ExportToMarkdown returned error: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "**Tracks**: 2") {
		t.Errorf("missing track count in: %s", text)
	}
	if !strings.Contains(text, "1. Muse - Hysteria (Absolution)") {
		t.Errorf("missing first entry in: %s", text)
	}
	if !strings.Contains(text, "[Spotify](https://open.spotify.com/track/abc)") {
		t.Errorf("missing spotify link in: %s", text)
	}
}

func TestExportToJSON(t *testing.T) {
	data, err := ExportToJSON(sampleAnalyses())
	if err != nil {
		t.Fatalf("ExportToJSON returned error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("generated JSON does not parse: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("JSON has %d entries, want 2", len(decoded))
	}
	if decoded[0]["title"] != "Hysteria" {
		t.Errorf("first entry = %v", decoded[0])
	}
	// Empty optional fields are omitted entirely.
	if _, ok := decoded[1]["album_title"]; ok {
		t.Error("empty album_title should be omitted")
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		format string
		file   string
	}{
		{"csv", "out.csv"},
		{"markdown", "out.md"},
		{"json", "out.json"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := WriteExport(sampleAnalyses(), tt.format, path); err != nil {
				t.Fatalf("WriteExport returned error: %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("export file missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("export file is empty")
			}
		})
	}

	if err := WriteExport(sampleAnalyses(), "yaml", filepath.Join(dir, "out.yaml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}
