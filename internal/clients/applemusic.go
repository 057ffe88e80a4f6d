// Apple Music catalog implementation of [Client]
//
// Apple Music API response types based on https://developer.apple.com/documentation/applemusicapi
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
	"golang.org/x/time/rate"
)

const appleMusicBaseURL = "https://api.music.apple.com/v1"

// AppleMusicArtwork represents an artwork resource with a templated URL.
type AppleMusicArtwork struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AppleMusicSongAttributes represents the attributes of a catalog song.
type AppleMusicSongAttributes struct {
	Name       string            `json:"name"`
	ArtistName string            `json:"artistName"`
	AlbumName  string            `json:"albumName"`
	ISRC       string            `json:"isrc"`
	URL        string            `json:"url"`
	Artwork    AppleMusicArtwork `json:"artwork"`
}

// AppleMusicSong represents a catalog song resource.
type AppleMusicSong struct {
	ID         string                   `json:"id"`
	Attributes AppleMusicSongAttributes `json:"attributes"`
}

type appleMusicSongs struct {
	Data []AppleMusicSong `json:"data"`
}

type appleMusicSearchResults struct {
	Results struct {
		Songs appleMusicSongs `json:"songs"`
	} `json:"results"`
}

// AppleMusicClient implements [Client] for the Apple Music catalog API.
// Authenticates with a MusicKit developer token.
type AppleMusicClient struct {
	developerToken string
	storefront     string
	httpClient     *http.Client
	limiter        *rate.Limiter
	matcher        matching.Matcher
}

// NewAppleMusicClient creates a new Apple Music client for the given storefront.
func NewAppleMusicClient(cfg shared.AppleMusicConfig, matcher matching.Matcher) *AppleMusicClient {
	storefront := cfg.Storefront
	if storefront == "" {
		storefront = "us"
	}

	return &AppleMusicClient{
		developerToken: cfg.DeveloperToken,
		storefront:     storefront,
		httpClient:     http.DefaultClient,
		limiter:        rate.NewLimiter(rate.Limit(10), 1),
		matcher:        matcher,
	}
}

func (c *AppleMusicClient) Platform() platform.Platform {
	return platform.AppleMusic
}

func (c *AppleMusicClient) IsAuthorized() bool {
	return c.developerToken != ""
}

// doRequest performs an authenticated GET against the Apple Music API.
func (c *AppleMusicClient) doRequest(ctx context.Context, endpoint string, result any) error {
	if !c.IsAuthorized() {
		return fmt.Errorf("%w: missing Apple Music developer token", shared.ErrUnauthenticated)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return requestError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, appleMusicBaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.developerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("Apple Music", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// FetchByURL resolves an Apple Music share URL into a [TrackInfo].
//
// Accepted shape: https://music.apple.com/us/album/album-name/ALBUM_ID?i=SONG_ID
// with the track id read from the "i" or "id" query parameter.
func (c *AppleMusicClient) FetchByURL(ctx context.Context, rawURL string) (*TrackInfo, error) {
	trackID, err := extractAppleMusicTrackID(rawURL)
	if err != nil {
		return nil, err
	}

	var songs appleMusicSongs
	endpoint := fmt.Sprintf("/catalog/%s/songs/%s", c.storefront, trackID)
	if err := c.doRequest(ctx, endpoint, &songs); err != nil {
		return nil, err
	}

	if len(songs.Data) == 0 {
		return nil, fmt.Errorf("%w: no Apple Music song with id %s", shared.ErrTrackNotFound, trackID)
	}

	return c.trackInfo(songs.Data[0]), nil
}

// FetchByTitleArtist searches the catalog and returns the best matching song.
func (c *AppleMusicClient) FetchByTitleArtist(ctx context.Context, title, artistName string) (*TrackInfo, error) {
	term := url.QueryEscape(title + " " + artistName)
	endpoint := fmt.Sprintf("/catalog/%s/search?types=songs&limit=10&term=%s", c.storefront, term)

	var results appleMusicSearchResults
	if err := c.doRequest(ctx, endpoint, &results); err != nil {
		return nil, err
	}

	songs := results.Results.Songs.Data
	candidates := make([]matching.Candidate, len(songs))
	for i, song := range songs {
		candidates[i] = matching.Candidate{Title: song.Attributes.Name, Artist: song.Attributes.ArtistName}
	}

	index := c.matcher.FindBestMatch(candidates, title, artistName)
	if index == matching.NoMatch {
		return nil, fmt.Errorf("%w: no Apple Music match for %q by %q", shared.ErrTrackNotFound, title, artistName)
	}

	return c.trackInfo(songs[index]), nil
}

// trackInfo converts a catalog song into a [TrackInfo].
func (c *AppleMusicClient) trackInfo(song AppleMusicSong) *TrackInfo {
	id := song.ID
	if id == "" {
		id = shared.GenerateID()
	}

	return &TrackInfo{
		Platform:   platform.AppleMusic,
		ID:         id,
		URL:        song.Attributes.URL,
		Title:      song.Attributes.Name,
		ArtistName: song.Attributes.ArtistName,
		ArtworkURL: artworkURL(song.Attributes.Artwork),
		AlbumTitle: song.Attributes.AlbumName,
		ISRC:       song.Attributes.ISRC,
	}
}

// artworkURL materializes the {w}x{h} templated artwork URL at 1024px.
func artworkURL(artwork AppleMusicArtwork) string {
	u := strings.ReplaceAll(artwork.URL, "{w}", "1024")
	return strings.ReplaceAll(u, "{h}", "1024")
}

// extractAppleMusicTrackID reads the track id from the "i" or "id" query parameter.
func extractAppleMusicTrackID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrInvalidURL, err)
	}

	query := u.Query()
	if id := query.Get("i"); id != "" {
		return id, nil
	}
	if id := query.Get("id"); id != "" {
		return id, nil
	}

	return "", fmt.Errorf("%w: no track id in %q", shared.ErrInvalidURL, rawURL)
}
