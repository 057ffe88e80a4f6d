// Spotify catalog implementation of [Client]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/giuliopime/crossfade/internal/matching"
	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

type spotifyExternalIDs struct {
	ISRC string `json:"isrc"`
}

type spotifyExternalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Artists      []SpotifyArtist     `json:"artists"`
	Album        SpotifyAlbum        `json:"album"`
	ExternalIDs  spotifyExternalIDs  `json:"external_ids"`
	ExternalURLs spotifyExternalURLs `json:"external_urls"`
}

type spotifySearchResults struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyClient implements [Client] for the Spotify Web API.
// Uses the OAuth2 client credentials flow, which is sufficient for
// catalog lookups and search.
type SpotifyClient struct {
	config     *clientcredentials.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	matcher    matching.Matcher
	authorized bool
}

// NewSpotifyClient creates a new Spotify client with the given credentials.
func NewSpotifyClient(cfg shared.SpotifyConfig, matcher matching.Matcher) *SpotifyClient {
	config := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyTokenURL,
	}

	client := &SpotifyClient{
		config:     config,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 1),
		matcher:    matcher,
		authorized: cfg.ClientID != "" && cfg.ClientSecret != "",
	}

	if client.authorized {
		// The oauth2 transport refreshes the app token as needed.
		client.httpClient = config.Client(context.Background())
	}

	return client
}

func (c *SpotifyClient) Platform() platform.Platform {
	return platform.Spotify
}

func (c *SpotifyClient) IsAuthorized() bool {
	return c.authorized
}

// doRequest performs an authenticated GET against the Spotify API.
func (c *SpotifyClient) doRequest(ctx context.Context, endpoint string, result any) error {
	if !c.IsAuthorized() {
		return fmt.Errorf("%w: missing Spotify client credentials", shared.ErrUnauthenticated)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return requestError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spotifyBaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("Spotify", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// FetchByURL resolves a Spotify track URL or URI into a [TrackInfo].
//
// Accepted shapes:
//   - https://open.spotify.com/track/4iV5W9uYEdYUVa79Axb7Rh
//   - https://open.spotify.com/track/4iV5W9uYEdYUVa79Axb7Rh?si=...
//   - spotify:track:4iV5W9uYEdYUVa79Axb7Rh
func (c *SpotifyClient) FetchByURL(ctx context.Context, rawURL string) (*TrackInfo, error) {
	trackID, err := extractSpotifyTrackID(rawURL)
	if err != nil {
		return nil, err
	}

	var track SpotifyTrack
	if err := c.doRequest(ctx, "/tracks/"+trackID, &track); err != nil {
		return nil, err
	}

	return c.trackInfo(track), nil
}

// FetchByTitleArtist searches the catalog and returns the best matching track.
func (c *SpotifyClient) FetchByTitleArtist(ctx context.Context, title, artistName string) (*TrackInfo, error) {
	query := url.QueryEscape(title + " " + artistName)
	endpoint := fmt.Sprintf("/search?type=track&limit=10&q=%s", query)

	var results spotifySearchResults
	if err := c.doRequest(ctx, endpoint, &results); err != nil {
		return nil, err
	}

	tracks := results.Tracks.Items
	candidates := make([]matching.Candidate, len(tracks))
	for i, track := range tracks {
		candidates[i] = matching.Candidate{Title: track.Name, Artist: firstArtistName(track.Artists)}
	}

	index := c.matcher.FindBestMatch(candidates, title, artistName)
	if index == matching.NoMatch {
		return nil, fmt.Errorf("%w: no Spotify match for %q by %q", shared.ErrTrackNotFound, title, artistName)
	}

	return c.trackInfo(tracks[index]), nil
}

// trackInfo converts a Spotify track into a [TrackInfo].
func (c *SpotifyClient) trackInfo(track SpotifyTrack) *TrackInfo {
	id := track.ID
	if id == "" {
		id = shared.GenerateID()
	}

	artwork := ""
	if len(track.Album.Images) > 0 {
		artwork = track.Album.Images[0].URL
	}

	return &TrackInfo{
		Platform:   platform.Spotify,
		ID:         id,
		URL:        track.ExternalURLs.Spotify,
		Title:      track.Name,
		ArtistName: firstArtistName(track.Artists),
		ArtworkURL: artwork,
		AlbumTitle: track.Album.Name,
		ISRC:       track.ExternalIDs.ISRC,
	}
}

func firstArtistName(artists []SpotifyArtist) string {
	if len(artists) == 0 {
		return "unknown"
	}
	return artists[0].Name
}

// extractSpotifyTrackID reads the track id from a share URL or a spotify: URI.
func extractSpotifyTrackID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)

	if rest, ok := strings.CutPrefix(rawURL, "spotify:track:"); ok && rest != "" {
		return rest, nil
	}

	if idx := strings.Index(rawURL, "open.spotify.com/track/"); idx >= 0 {
		id := rawURL[idx+len("open.spotify.com/track/"):]
		if cut := strings.IndexAny(id, "?/"); cut >= 0 {
			id = id[:cut]
		}
		if id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: no Spotify track id in %q", shared.ErrInvalidURL, rawURL)
}
