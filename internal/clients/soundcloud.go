// SoundCloud catalog implementation of [Client]
//
// SoundCloud API response types based on https://developers.soundcloud.com/docs/api/explorer
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/giuliopime/crossfade/internal/matching"
	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	soundCloudTokenURL = "https://secure.soundcloud.com/oauth/token"
	soundCloudBaseURL  = "https://api.soundcloud.com"
)

// SoundCloudUser represents the uploader of a track.
type SoundCloudUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type soundCloudPublisherMetadata struct {
	ISRC string `json:"isrc"`
}

// SoundCloudTrack represents a SoundCloud track.
//
// SoundCloud has no album concept, so AlbumTitle is always empty in the
// resulting [TrackInfo].
type SoundCloudTrack struct {
	ID                int64                       `json:"id"`
	URN               string                      `json:"urn"`
	Title             string                      `json:"title"`
	PermalinkURL      string                      `json:"permalink_url"`
	ArtworkURL        string                      `json:"artwork_url"`
	User              SoundCloudUser              `json:"user"`
	PublisherMetadata soundCloudPublisherMetadata `json:"publisher_metadata"`
}

// SoundCloudClient implements [Client] for the SoundCloud API.
// Uses the OAuth2 client credentials flow.
type SoundCloudClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	matcher    matching.Matcher
	authorized bool
}

// NewSoundCloudClient creates a new SoundCloud client with the given credentials.
func NewSoundCloudClient(cfg shared.SoundCloudConfig, matcher matching.Matcher) *SoundCloudClient {
	client := &SoundCloudClient{
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 1),
		matcher:    matcher,
		authorized: cfg.ClientID != "" && cfg.ClientSecret != "",
	}

	if client.authorized {
		config := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     soundCloudTokenURL,
		}
		client.httpClient = config.Client(context.Background())
	}

	return client
}

func (c *SoundCloudClient) Platform() platform.Platform {
	return platform.SoundCloud
}

func (c *SoundCloudClient) IsAuthorized() bool {
	return c.authorized
}

// doRequest performs an authenticated GET against the SoundCloud API.
func (c *SoundCloudClient) doRequest(ctx context.Context, endpoint string, result any) error {
	if !c.IsAuthorized() {
		return fmt.Errorf("%w: missing SoundCloud client credentials", shared.ErrUnauthenticated)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return requestError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, soundCloudBaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("SoundCloud", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// FetchByURL resolves a SoundCloud permalink via the /resolve endpoint.
func (c *SoundCloudClient) FetchByURL(ctx context.Context, rawURL string) (*TrackInfo, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidURL, err)
	}

	var track SoundCloudTrack
	endpoint := "/resolve?url=" + url.QueryEscape(rawURL)
	if err := c.doRequest(ctx, endpoint, &track); err != nil {
		return nil, err
	}

	if track.Title == "" {
		return nil, fmt.Errorf("%w: %q did not resolve to a track", shared.ErrTrackNotFound, rawURL)
	}

	return c.trackInfo(track), nil
}

// FetchByTitleArtist searches the catalog and returns the best matching track.
//
// SoundCloud attributes tracks to the uploading user, so the username
// stands in for the artist during matching.
func (c *SoundCloudClient) FetchByTitleArtist(ctx context.Context, title, artistName string) (*TrackInfo, error) {
	query := url.QueryEscape(title + " " + artistName)
	endpoint := fmt.Sprintf("/tracks?limit=10&q=%s", query)

	var tracks []SoundCloudTrack
	if err := c.doRequest(ctx, endpoint, &tracks); err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, len(tracks))
	for i, track := range tracks {
		candidates[i] = matching.Candidate{Title: track.Title, Artist: track.User.Username}
	}

	index := c.matcher.FindBestMatch(candidates, title, artistName)
	if index == matching.NoMatch {
		return nil, fmt.Errorf("%w: no SoundCloud match for %q by %q", shared.ErrTrackNotFound, title, artistName)
	}

	return c.trackInfo(tracks[index]), nil
}

// trackInfo converts a SoundCloud track into a [TrackInfo].
func (c *SoundCloudClient) trackInfo(track SoundCloudTrack) *TrackInfo {
	id := track.URN
	if id == "" && track.ID != 0 {
		id = strconv.FormatInt(track.ID, 10)
	}
	if id == "" {
		id = shared.GenerateID()
	}

	return &TrackInfo{
		Platform:   platform.SoundCloud,
		ID:         id,
		URL:        track.PermalinkURL,
		Title:      track.Title,
		ArtistName: track.User.Username,
		ArtworkURL: track.ArtworkURL,
		ISRC:       track.PublisherMetadata.ISRC,
	}
}
