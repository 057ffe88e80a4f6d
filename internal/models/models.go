package models

import (
	"fmt"
	"time"

	"github.com/giuliopime/crossfade/internal/platform"
)

// TrackAnalysis is the persisted cross-platform record for one track.
//
// Optional fields use the empty string as "unset". Platform URL fields
// are populated incrementally as matches are found; any subset may stay
// empty when a platform is unauthorized, unmatched or not queried.
type TrackAnalysis struct {
	// ID is the composite key "{platform_id}:{native_id}" derived from
	// the platform the original shared URL belonged to. Immutable.
	ID         string
	Title      string
	ArtistName string
	AlbumTitle string
	ArtworkURL string
	ISRC       string

	AppleMusicURL string
	SpotifyURL    string
	SoundCloudURL string
	YouTubeURL    string

	DateAnalyzed time.Time
}

// ComposeID builds the composite track analysis key from the source
// platform and its native track id.
func ComposeID(p platform.Platform, nativeID string) string {
	return fmt.Sprintf("%s:%s", p.ID(), nativeID)
}

// Validate checks that the analysis carries the minimum required data.
func (t *TrackAnalysis) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("track analysis missing id")
	}
	if t.Title == "" {
		return fmt.Errorf("track analysis missing title")
	}
	if t.ArtistName == "" {
		return fmt.Errorf("track analysis missing artist name")
	}
	return nil
}

// URLFor returns the stored URL for the given platform, or "" if none.
func (t *TrackAnalysis) URLFor(p platform.Platform) string {
	switch p {
	case platform.AppleMusic:
		return t.AppleMusicURL
	case platform.Spotify:
		return t.SpotifyURL
	case platform.SoundCloud:
		return t.SoundCloudURL
	case platform.YouTube:
		return t.YouTubeURL
	default:
		return ""
	}
}

// SetURL stores the URL for the given platform.
func (t *TrackAnalysis) SetURL(p platform.Platform, url string) {
	switch p {
	case platform.AppleMusic:
		t.AppleMusicURL = url
	case platform.Spotify:
		t.SpotifyURL = url
	case platform.SoundCloud:
		t.SoundCloudURL = url
	case platform.YouTube:
		t.YouTubeURL = url
	}
}

// PlatformsCount reports on how many platforms the track is known to be
// available, used to decide whether to suggest configuring more platforms.
func (t *TrackAnalysis) PlatformsCount() int {
	count := 0
	for _, p := range platform.All() {
		if t.URLFor(p) != "" {
			count++
		}
	}
	return count
}
