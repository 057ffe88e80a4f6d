package analysis

import (
	"fmt"
	"io"
	"os"

	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/shared"
)

// SystemActions implements [Actions] against the host system: clipboard
// for copy, default browser for open, and rendered share text on Out.
type SystemActions struct {
	Out io.Writer
}

// NewSystemActions creates a SystemActions writing share output to w,
// defaulting to stdout.
func NewSystemActions(w io.Writer) SystemActions {
	if w == nil {
		w = os.Stdout
	}
	return SystemActions{Out: w}
}

func (s SystemActions) Copy(text string) error {
	return shared.CopyToClipboard(text)
}

func (s SystemActions) Share(analysis *models.TrackAnalysis, url string) error {
	_, err := fmt.Fprintf(s.Out, "%s - %s\n%s\n", analysis.Title, analysis.ArtistName, url)
	if err != nil {
		return fmt.Errorf("failed to write share text: %w", err)
	}
	return nil
}

func (s SystemActions) Open(url string) error {
	return shared.OpenBrowser(url)
}
