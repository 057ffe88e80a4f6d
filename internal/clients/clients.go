package clients

import (
	"context"
	"time"

	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/platform"
)

// Client defines the catalog capability every platform integration provides.
type Client interface {
	// Platform returns the platform this client serves.
	Platform() platform.Platform

	// IsAuthorized reports whether the client holds usable credentials.
	// Unauthorized platforms are skipped during analysis fan-out.
	IsAuthorized() bool

	// FetchByURL resolves a track share URL into a [TrackInfo].
	FetchByURL(ctx context.Context, rawURL string) (*TrackInfo, error)

	// FetchByTitleArtist searches the platform catalog and returns the
	// best matching track, or ErrTrackNotFound when nothing matches.
	FetchByTitleArtist(ctx context.Context, title, artistName string) (*TrackInfo, error)
}

// TrackInfo is a transient, platform-specific fetch result. It is
// produced fresh on every fetch and always converted into a
// [models.TrackAnalysis] before persistence.
type TrackInfo struct {
	Platform platform.Platform

	// ID is the id the platform uses for this track. It is NOT
	// composed with the platform id like the TrackAnalysis key.
	ID string

	// URL is the canonical share URL, empty when the platform does
	// not expose a stable one.
	URL string

	Title      string
	ArtistName string
	ArtworkURL string
	AlbumTitle string
	ISRC       string
}

// ToAnalysis converts the fetch result into a durable [models.TrackAnalysis]
// seeded with this platform's URL.
func (t *TrackInfo) ToAnalysis(analyzedAt time.Time) *models.TrackAnalysis {
	analysis := &models.TrackAnalysis{
		ID:           models.ComposeID(t.Platform, t.ID),
		Title:        t.Title,
		ArtistName:   t.ArtistName,
		AlbumTitle:   t.AlbumTitle,
		ArtworkURL:   t.ArtworkURL,
		ISRC:         t.ISRC,
		DateAnalyzed: analyzedAt,
	}
	analysis.SetURL(t.Platform, t.URL)
	return analysis
}

// Registry maps each platform to its client implementation, resolved
// once at startup and consumed by the analysis engine.
type Registry map[platform.Platform]Client

// For returns the client registered for the given platform.
func (r Registry) For(p platform.Platform) (Client, bool) {
	c, ok := r[p]
	return c, ok
}
