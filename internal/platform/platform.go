// package platform defines the closed set of supported music platforms
// and the user-configurable post-analysis behaviours.
package platform

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/giuliopime/crossfade/internal/shared"
)

// Platform identifies one of the supported music streaming services.
type Platform int

const (
	AppleMusic Platform = iota
	Spotify
	SoundCloud
	YouTube
)

// All returns every supported platform in display order.
func All() []Platform {
	return []Platform{AppleMusic, Spotify, SoundCloud, YouTube}
}

// ID returns the stable lowercase identifier used as a namespace prefix
// in composite track ids and in configuration keys.
func (p Platform) ID() string {
	switch p {
	case AppleMusic:
		return "apple_music"
	case Spotify:
		return "spotify"
	case SoundCloud:
		return "soundcloud"
	case YouTube:
		return "youtube"
	default:
		return "unknown"
	}
}

// DisplayName returns the human readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case AppleMusic:
		return "Apple Music"
	case Spotify:
		return "Spotify"
	case SoundCloud:
		return "SoundCloud"
	case YouTube:
		return "YouTube"
	default:
		return "Unknown"
	}
}

func (p Platform) String() string {
	return p.ID()
}

// Parse resolves a platform identifier string into a [Platform].
// Unrecognized identifiers are an error, never a fallback default.
func Parse(id string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "apple_music":
		return AppleMusic, nil
	case "spotify":
		return Spotify, nil
	case "soundcloud":
		return SoundCloud, nil
	case "youtube":
		return YouTube, nil
	default:
		return 0, fmt.Errorf("%w: %q", shared.ErrUnsupportedPlatform, id)
	}
}

// Detect inspects a track URL and determines which platform it belongs to.
//
// Detection is host based: "apple", "spotify" and "soundcloud" substrings,
// plus the youtube.com/youtu.be host patterns. Spotify track URIs
// (spotify:track:{id}) are also recognized.
func Detect(rawURL string) (Platform, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrInvalidURL, err)
	}

	if u.Scheme == "spotify" {
		return Spotify, nil
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return 0, fmt.Errorf("%w: missing host in %q", shared.ErrUnsupportedPlatform, rawURL)
	}

	switch {
	case strings.Contains(host, "apple"):
		return AppleMusic, nil
	case strings.Contains(host, "spotify"):
		return Spotify, nil
	case strings.Contains(host, "soundcloud"):
		return SoundCloud, nil
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return YouTube, nil
	default:
		return 0, fmt.Errorf("%w: host %q", shared.ErrUnsupportedPlatform, host)
	}
}
