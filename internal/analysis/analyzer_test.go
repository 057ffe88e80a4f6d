package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giuliopime/crossfade/internal/clients"
	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
	crossfadetest "github.com/giuliopime/crossfade/internal/testing"
)

const spotifyTrackURL = "https://open.spotify.com/track/4iV5W9uYEdYUVa79Axb7Rh"

func spotifyTrackInfo() *clients.TrackInfo {
	return &clients.TrackInfo{
		Platform:   platform.Spotify,
		ID:         "4iV5W9uYEdYUVa79Axb7Rh",
		URL:        spotifyTrackURL,
		Title:      "Hysteria",
		ArtistName: "Muse",
		AlbumTitle: "Absolution",
	}
}

func spotifySourceClient() *crossfadetest.MockClient {
	return &crossfadetest.MockClient{
		PlatformValue: platform.Spotify,
		Authorized:    true,
		FetchByURLFunc: func(ctx context.Context, rawURL string) (*clients.TrackInfo, error) {
			return spotifyTrackInfo(), nil
		},
	}
}

func matchClient(p platform.Platform, url string) *crossfadetest.MockClient {
	return &crossfadetest.MockClient{
		PlatformValue: p,
		Authorized:    true,
		FetchByTitleArtistFunc: func(ctx context.Context, title, artistName string) (*clients.TrackInfo, error) {
			return &clients.TrackInfo{Platform: p, ID: "match", URL: url, Title: title, ArtistName: artistName}, nil
		},
	}
}

func TestAnalyzeUnsupportedPlatform(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerOpts{Clients: clients.Registry{}})

	result := analyzer.Analyze(context.Background(), "https://example.com/track/1", nil)
	if result.State != UnsupportedPlatform {
		t.Errorf("State = %v, want UnsupportedPlatform", result.State)
	}
	if result.Err != nil {
		t.Errorf("Err = %v, want nil", result.Err)
	}
}

func TestAnalyzeUnauthorizedSource(t *testing.T) {
	source := &crossfadetest.MockClient{PlatformValue: platform.Spotify, Authorized: false}
	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{platform.Spotify: source},
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != NeedsAuthorization {
		t.Fatalf("State = %v, want NeedsAuthorization", result.State)
	}
	if result.AuthPlatform != platform.Spotify {
		t.Errorf("AuthPlatform = %v, want Spotify", result.AuthPlatform)
	}
	if calls := source.URLCalls(); len(calls) != 0 {
		t.Errorf("FetchByURL was called %d times for an unauthorized platform", len(calls))
	}
}

func TestAnalyzeUnregisteredSource(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerOpts{Clients: clients.Registry{}})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != NeedsAuthorization {
		t.Errorf("State = %v, want NeedsAuthorization", result.State)
	}
}

func TestAnalyzeShowAnalysisFansOut(t *testing.T) {
	store := &crossfadetest.MockStore{}
	apple := matchClient(platform.AppleMusic, "https://music.apple.com/us/album/x?i=1")

	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{
			platform.Spotify:    spotifySourceClient(),
			platform.AppleMusic: apple,
		},
		Store: store,
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != Analyzed {
		t.Fatalf("State = %v, want Analyzed (err: %v)", result.State, result.Err)
	}
	if !result.LoadedAvailability {
		t.Error("LoadedAvailability = false, want true after fan-out")
	}

	analysis := result.Analysis
	if analysis.SpotifyURL != spotifyTrackURL {
		t.Errorf("SpotifyURL = %q, want the source URL", analysis.SpotifyURL)
	}
	if analysis.AppleMusicURL == "" {
		t.Error("AppleMusicURL empty, want the fan-out match")
	}
	if analysis.PlatformsCount() != 2 {
		t.Errorf("PlatformsCount() = %d, want 2", analysis.PlatformsCount())
	}

	// The matched lookup must use the source track's metadata.
	calls := apple.TitleArtistCalls()
	if len(calls) != 1 || calls[0] != [2]string{"Hysteria", "Muse"} {
		t.Errorf("unexpected match lookups: %v", calls)
	}

	if upserted := store.Upserted(); len(upserted) != 1 || upserted[0].ID != "spotify:4iV5W9uYEdYUVa79Axb7Rh" {
		t.Errorf("unexpected persisted records: %+v", upserted)
	}
}

func TestAnalyzeFanOutFailureDegrades(t *testing.T) {
	store := &crossfadetest.MockStore{}
	failing := &crossfadetest.MockClient{
		PlatformValue: platform.AppleMusic,
		Authorized:    true,
		FetchByTitleArtistFunc: func(ctx context.Context, title, artistName string) (*clients.TrackInfo, error) {
			return nil, shared.ErrNetwork
		},
	}
	youtube := matchClient(platform.YouTube, "https://www.youtube.com/watch?v=abc")

	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{
			platform.Spotify:    spotifySourceClient(),
			platform.AppleMusic: failing,
			platform.YouTube:    youtube,
		},
		Store: store,
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != Analyzed {
		t.Fatalf("State = %v, want Analyzed (err: %v)", result.State, result.Err)
	}

	// The failing platform degrades to unavailable without aborting the rest.
	if result.Analysis.AppleMusicURL != "" {
		t.Errorf("AppleMusicURL = %q, want empty", result.Analysis.AppleMusicURL)
	}
	if result.Analysis.YouTubeURL == "" {
		t.Error("YouTubeURL empty, want the surviving match")
	}
	if len(store.Upserted()) != 1 {
		t.Errorf("persisted %d records, want 1", len(store.Upserted()))
	}
}

func TestAnalyzeCopyBehaviour(t *testing.T) {
	store := &crossfadetest.MockStore{}
	actions := &crossfadetest.MockActions{}
	appleURL := "https://music.apple.com/us/album/absolution?i=42"
	apple := matchClient(platform.AppleMusic, appleURL)

	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{
			platform.Spotify:    spotifySourceClient(),
			platform.AppleMusic: apple,
		},
		Store:   store,
		Actions: actions,
		Behaviours: platform.Behaviours{
			platform.Spotify: {Action: platform.Copy, Target: platform.AppleMusic},
		},
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != CompletedBehaviour {
		t.Fatalf("State = %v, want CompletedBehaviour (err: %v)", result.State, result.Err)
	}

	if len(actions.Copied) != 1 || actions.Copied[0] != appleURL {
		t.Errorf("Copied = %v, want the Apple Music URL", actions.Copied)
	}
	if len(store.Upserted()) != 1 {
		t.Errorf("persisted %d records, want 1", len(store.Upserted()))
	}
}

func TestAnalyzeBehaviourTargetIsSource(t *testing.T) {
	actions := &crossfadetest.MockActions{}

	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{platform.Spotify: spotifySourceClient()},
		Store:   &crossfadetest.MockStore{},
		Actions: actions,
		Behaviours: platform.Behaviours{
			platform.Spotify: {Action: platform.Copy, Target: platform.Spotify},
		},
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != CompletedBehaviour {
		t.Fatalf("State = %v, want CompletedBehaviour (err: %v)", result.State, result.Err)
	}

	// No cross-platform lookup needed; the source link is copied directly.
	if len(actions.Copied) != 1 || actions.Copied[0] != spotifyTrackURL {
		t.Errorf("Copied = %v, want the source URL", actions.Copied)
	}
}

func TestAnalyzeBehaviourTargetUnauthorized(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{
			platform.Spotify:    spotifySourceClient(),
			platform.AppleMusic: &crossfadetest.MockClient{PlatformValue: platform.AppleMusic, Authorized: false},
		},
		Store:   &crossfadetest.MockStore{},
		Actions: &crossfadetest.MockActions{},
		Behaviours: platform.Behaviours{
			platform.Spotify: {Action: platform.Open, Target: platform.AppleMusic},
		},
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != NeedsAuthorization {
		t.Fatalf("State = %v, want NeedsAuthorization", result.State)
	}
	if result.AuthPlatform != platform.AppleMusic {
		t.Errorf("AuthPlatform = %v, want the behaviour target", result.AuthPlatform)
	}
	if result.Platform != platform.Spotify {
		t.Errorf("Platform = %v, want the detected source", result.Platform)
	}
}

func TestAnalyzeBehaviourTargetNotFound(t *testing.T) {
	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{
			platform.Spotify: spotifySourceClient(),
			platform.AppleMusic: &crossfadetest.MockClient{
				PlatformValue: platform.AppleMusic,
				Authorized:    true,
				FetchByTitleArtistFunc: func(ctx context.Context, title, artistName string) (*clients.TrackInfo, error) {
					return nil, shared.ErrTrackNotFound
				},
			},
		},
		Store:   &crossfadetest.MockStore{},
		Actions: &crossfadetest.MockActions{},
		Behaviours: platform.Behaviours{
			platform.Spotify: {Action: platform.Copy, Target: platform.AppleMusic},
		},
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != Failed {
		t.Fatalf("State = %v, want Failed", result.State)
	}
	if !errors.Is(result.Err, shared.ErrTrackNotFound) {
		t.Errorf("Err = %v, want ErrTrackNotFound", result.Err)
	}
}

func TestAnalyzeCancelledRunSkipsPersistence(t *testing.T) {
	store := &crossfadetest.MockStore{}
	ctx, cancel := context.WithCancel(context.Background())

	cancelling := &crossfadetest.MockClient{
		PlatformValue: platform.AppleMusic,
		Authorized:    true,
		FetchByTitleArtistFunc: func(fetchCtx context.Context, title, artistName string) (*clients.TrackInfo, error) {
			cancel()
			return nil, fetchCtx.Err()
		},
	}

	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{
			platform.Spotify:    spotifySourceClient(),
			platform.AppleMusic: cancelling,
		},
		Store: store,
	})

	result := analyzer.Analyze(ctx, spotifyTrackURL, nil)
	if result.State != Analyzed {
		t.Fatalf("State = %v, want Analyzed (err: %v)", result.State, result.Err)
	}
	if len(store.Upserted()) != 0 {
		t.Errorf("persisted %d records after cancellation, want 0", len(store.Upserted()))
	}
}

func TestAnalyzeSourceFetchUnauthenticated(t *testing.T) {
	source := &crossfadetest.MockClient{
		PlatformValue: platform.Spotify,
		Authorized:    true,
		FetchByURLFunc: func(ctx context.Context, rawURL string) (*clients.TrackInfo, error) {
			return nil, shared.ErrUnauthenticated
		},
	}

	analyzer := NewAnalyzer(AnalyzerOpts{Clients: clients.Registry{platform.Spotify: source}})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != NeedsAuthorization {
		t.Errorf("State = %v, want NeedsAuthorization when credentials are rejected", result.State)
	}
}

func TestAnalyzeSourceFetchFails(t *testing.T) {
	source := &crossfadetest.MockClient{
		PlatformValue: platform.Spotify,
		Authorized:    true,
		FetchByURLFunc: func(ctx context.Context, rawURL string) (*clients.TrackInfo, error) {
			return nil, shared.ErrNetwork
		},
	}

	analyzer := NewAnalyzer(AnalyzerOpts{Clients: clients.Registry{platform.Spotify: source}})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, nil)
	if result.State != Failed {
		t.Fatalf("State = %v, want Failed", result.State)
	}
	if !errors.Is(result.Err, shared.ErrNetwork) {
		t.Errorf("Err = %v, want ErrNetwork", result.Err)
	}
}

func TestAnalyzeEmitsUpdates(t *testing.T) {
	updates := make(chan Update, 16)

	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{platform.Spotify: spotifySourceClient()},
		Store:   &crossfadetest.MockStore{},
	})

	result := analyzer.Analyze(context.Background(), spotifyTrackURL, updates)
	close(updates)

	if result.State != Analyzed {
		t.Fatalf("State = %v, want Analyzed (err: %v)", result.State, result.Err)
	}

	var states []State
	for u := range updates {
		states = append(states, u.State)
	}

	if len(states) == 0 || states[0] != Loading {
		t.Fatalf("first update = %v, want Loading", states)
	}
	sawAnalyzed := false
	for _, s := range states {
		if s == Analyzed {
			sawAnalyzed = true
		}
	}
	if !sawAnalyzed {
		t.Errorf("updates %v never reached Analyzed", states)
	}
}

func TestAnalyzeUpdatesNeverBlock(t *testing.T) {
	// An unbuffered channel nobody reads must not stall the run.
	updates := make(chan Update)

	analyzer := NewAnalyzer(AnalyzerOpts{
		Clients: clients.Registry{platform.Spotify: spotifySourceClient()},
		Store:   &crossfadetest.MockStore{},
	})

	done := make(chan struct{})
	go func() {
		analyzer.Analyze(context.Background(), spotifyTrackURL, updates)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Analyze blocked on an unread updates channel")
	}
}
