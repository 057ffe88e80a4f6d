// YouTube catalog implementation of [Client]
//
// YouTube Data API v3 response types based on https://developers.google.com/youtube/v3/docs
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

const youTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeThumbnail represents a single video thumbnail.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeSnippet holds the displayable metadata of a video.
//
// Music on YouTube is plain videos, so the channel title stands in for
// the artist and there is no album or ISRC metadata.
type YouTubeSnippet struct {
	Title        string                      `json:"title"`
	ChannelTitle string                      `json:"channelTitle"`
	Thumbnails   map[string]YouTubeThumbnail `json:"thumbnails"`
}

// YouTubeVideo represents an item of a videos.list response.
type YouTubeVideo struct {
	ID      string         `json:"id"`
	Snippet YouTubeSnippet `json:"snippet"`
}

type youTubeVideoList struct {
	Items []YouTubeVideo `json:"items"`
}

type youTubeSearchID struct {
	VideoID string `json:"videoId"`
}

// YouTubeSearchResult represents an item of a search.list response.
type YouTubeSearchResult struct {
	ID      youTubeSearchID `json:"id"`
	Snippet YouTubeSnippet  `json:"snippet"`
}

type youTubeSearchList struct {
	Items []YouTubeSearchResult `json:"items"`
}

// YouTubeClient implements [Client] for the YouTube Data API.
// Authenticates with an API key, which suffices for read-only lookups.
type YouTubeClient struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	matcher    matching.Matcher
}

// NewYouTubeClient creates a new YouTube client with the given API key.
func NewYouTubeClient(cfg shared.YouTubeConfig, matcher matching.Matcher) *YouTubeClient {
	return &YouTubeClient{
		apiKey:     cfg.APIKey,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 1),
		matcher:    matcher,
	}
}

func (c *YouTubeClient) Platform() platform.Platform {
	return platform.YouTube
}

func (c *YouTubeClient) IsAuthorized() bool {
	return c.apiKey != ""
}

// doRequest performs a GET against the YouTube Data API with the API key attached.
func (c *YouTubeClient) doRequest(ctx context.Context, endpoint string, result any) error {
	if !c.IsAuthorized() {
		return fmt.Errorf("%w: missing YouTube API key", shared.ErrUnauthenticated)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return requestError(err)
	}

	apiURL := youTubeBaseURL + endpoint + "&key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return requestError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("YouTube", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// FetchByURL resolves a YouTube video URL into a [TrackInfo].
//
// Accepted shapes: watch?v={id}, youtu.be/{id} and embed/{id}.
func (c *YouTubeClient) FetchByURL(ctx context.Context, rawURL string) (*TrackInfo, error) {
	videoID, err := extractYouTubeVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	var list youTubeVideoList
	endpoint := "/videos?part=snippet&id=" + url.QueryEscape(videoID)
	if err := c.doRequest(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	if len(list.Items) == 0 {
		return nil, fmt.Errorf("%w: no YouTube video with id %s", shared.ErrTrackNotFound, videoID)
	}

	return c.trackInfo(list.Items[0].ID, list.Items[0].Snippet), nil
}

// FetchByTitleArtist searches for videos and returns the best matching one.
func (c *YouTubeClient) FetchByTitleArtist(ctx context.Context, title, artistName string) (*TrackInfo, error) {
	query := url.QueryEscape(title + " " + artistName)
	endpoint := fmt.Sprintf("/search?part=snippet&type=video&maxResults=10&q=%s", query)

	var list youTubeSearchList
	if err := c.doRequest(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, len(list.Items))
	for i, item := range list.Items {
		candidates[i] = matching.Candidate{Title: item.Snippet.Title, Artist: item.Snippet.ChannelTitle}
	}

	index := c.matcher.FindBestMatch(candidates, title, artistName)
	if index == matching.NoMatch {
		return nil, fmt.Errorf("%w: no YouTube match for %q by %q", shared.ErrTrackNotFound, title, artistName)
	}

	chosen := list.Items[index]
	return c.trackInfo(chosen.ID.VideoID, chosen.Snippet), nil
}

// trackInfo converts a video snippet into a [TrackInfo].
func (c *YouTubeClient) trackInfo(videoID string, snippet YouTubeSnippet) *TrackInfo {
	if videoID == "" {
		videoID = shared.GenerateID()
	}

	artwork := ""
	for _, key := range []string{"maxres", "high", "default"} {
		if thumb, ok := snippet.Thumbnails[key]; ok && thumb.URL != "" {
			artwork = thumb.URL
			break
		}
	}

	return &TrackInfo{
		Platform:   platform.YouTube,
		ID:         videoID,
		URL:        "https://www.youtube.com/watch?v=" + videoID,
		Title:      snippet.Title,
		ArtistName: snippet.ChannelTitle,
		ArtworkURL: artwork,
	}
}

// extractYouTubeVideoID reads the video id from one of the three
// accepted URL shapes: "?v=", "youtu.be/" and "embed/".
func extractYouTubeVideoID(rawURL string) (string, error) {
	if idx := strings.Index(rawURL, "v="); idx >= 0 {
		id := rawURL[idx+len("v="):]
		if cut := strings.IndexByte(id, '&'); cut >= 0 {
			id = id[:cut]
		}
		if id != "" {
			return id, nil
		}
	}

	for _, marker := range []string{"youtu.be/", "embed/"} {
		if idx := strings.Index(rawURL, marker); idx >= 0 {
			id := rawURL[idx+len(marker):]
			if cut := strings.IndexByte(id, '?'); cut >= 0 {
				id = id[:cut]
			}
			if id != "" {
				return id, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no YouTube video id in %q", shared.ErrInvalidURL, rawURL)
}
