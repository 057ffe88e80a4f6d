package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/giuliopime/crossfade/internal/models"
)

var _ list.Item = analysisItem{}

// analysisItem wraps [models.TrackAnalysis] to implement [list.Item].
type analysisItem struct {
	analysis *models.TrackAnalysis
}

func (i analysisItem) FilterValue() string {
	return i.analysis.Title + " " + i.analysis.ArtistName
}

func (i analysisItem) Title() string { return i.analysis.Title }

func (i analysisItem) Description() string {
	desc := i.analysis.ArtistName
	if i.analysis.AlbumTitle != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.analysis.AlbumTitle)
	}
	return fmt.Sprintf("%s • %d platforms", desc, i.analysis.PlatformsCount())
}
