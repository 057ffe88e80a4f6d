package platform

import (
	"errors"
	"testing"

	"github.com/giuliopime/crossfade/internal/shared"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Platform
	}{
		{"apple music song page", "https://music.apple.com/us/album/starlight/1234?i=5678", AppleMusic},
		{"spotify track page", "https://open.spotify.com/track/4VqPOruhp5EdPBeR92t6lQ", Spotify},
		{"spotify uri", "spotify:track:4VqPOruhp5EdPBeR92t6lQ", Spotify},
		{"soundcloud track page", "https://soundcloud.com/muse/starlight", SoundCloud},
		{"youtube watch", "https://www.youtube.com/watch?v=Pgum6OT_VH8", YouTube},
		{"youtube short link", "https://youtu.be/Pgum6OT_VH8", YouTube},
		{"surrounding whitespace", "  https://open.spotify.com/track/abc  ", Spotify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.url)
			if err != nil {
				t.Fatalf("Detect(%q) returned error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestDetectUnsupported(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"unknown host", "https://example.com/track/123"},
		{"no host", "not-a-url"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Detect(tt.url)
			if !errors.Is(err, shared.ErrUnsupportedPlatform) {
				t.Errorf("Detect(%q) error = %v, want ErrUnsupportedPlatform", tt.url, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	for _, p := range All() {
		got, err := Parse(p.ID())
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", p.ID(), err)
		}
		if got != p {
			t.Errorf("Parse(%q) = %v, want %v", p.ID(), got, p)
		}
	}

	if _, err := Parse("deezer"); !errors.Is(err, shared.ErrUnsupportedPlatform) {
		t.Errorf("Parse(\"deezer\") error = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestBehaviourEncodeParseRoundTrip(t *testing.T) {
	behaviours := []Behaviour{
		{Action: ShowAnalysis},
		{Action: Copy, Target: Spotify},
		{Action: Share, Target: AppleMusic},
		{Action: Open, Target: YouTube},
	}

	for _, b := range behaviours {
		encoded := b.Encode()
		parsed, err := ParseBehaviour(encoded)
		if err != nil {
			t.Fatalf("ParseBehaviour(%q) returned error: %v", encoded, err)
		}
		if parsed != b {
			t.Errorf("ParseBehaviour(%q) = %+v, want %+v", encoded, parsed, b)
		}
	}
}

func TestParseBehaviourErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown bare action", "explode"},
		{"unknown composite action", "launch:spotify"},
		{"unknown platform", "copy:deezer"},
		{"too many parts", "copy:spotify:extra"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBehaviour(tt.raw); !errors.Is(err, shared.ErrUnknownBehaviour) {
				t.Errorf("ParseBehaviour(%q) error = %v, want ErrUnknownBehaviour", tt.raw, err)
			}
		})
	}
}

func TestParseBehaviours(t *testing.T) {
	raw := map[string]string{
		"apple_music": "show_analysis",
		"spotify":     "copy:apple_music",
	}

	behaviours, err := ParseBehaviours(raw)
	if err != nil {
		t.Fatalf("ParseBehaviours returned error: %v", err)
	}

	if got := behaviours.For(Spotify); got != (Behaviour{Action: Copy, Target: AppleMusic}) {
		t.Errorf("For(Spotify) = %+v, want copy:apple_music", got)
	}
	if got := behaviours.For(AppleMusic); got.Action != ShowAnalysis {
		t.Errorf("For(AppleMusic) = %+v, want show_analysis", got)
	}
	// Unconfigured platforms fall back to show_analysis.
	if got := behaviours.For(YouTube); got.Action != ShowAnalysis {
		t.Errorf("For(YouTube) = %+v, want show_analysis", got)
	}
}

func TestParseBehavioursRejectsBadKeys(t *testing.T) {
	if _, err := ParseBehaviours(map[string]string{"deezer": "show_analysis"}); err == nil {
		t.Error("expected error for unknown platform key")
	}
	if _, err := ParseBehaviours(map[string]string{"spotify": "bogus"}); err == nil {
		t.Error("expected error for unknown behaviour value")
	}
}

func TestBehaviourDisplayName(t *testing.T) {
	tests := []struct {
		behaviour Behaviour
		want      string
	}{
		{Behaviour{Action: ShowAnalysis}, "Show Analysis"},
		{Behaviour{Action: Copy, Target: Spotify}, "Copy Spotify"},
		{Behaviour{Action: Open, Target: AppleMusic}, "Open Apple Music"},
	}

	for _, tt := range tests {
		if got := tt.behaviour.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}
