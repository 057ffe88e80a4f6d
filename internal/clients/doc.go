// Package clients implements the platform catalog client seam.
//
// Each supported platform ([AppleMusicClient], [SpotifyClient],
// [SoundCloudClient], [YouTubeClient]) implements the [Client]
// interface: authorization state plus fetch-by-URL and
// fetch-by-title/artist lookups. Search based lookups run the raw
// vendor results through the matching package before returning a
// single [TrackInfo], so callers never see more than one candidate.
//
// Errors are reported through the shared sentinels (ErrInvalidURL,
// ErrTrackNotFound, ErrUnauthenticated, ErrNetwork) and [APIError]
// for non-2xx vendor responses, so the analysis layer can offer
// differentiated retry affordances.
package clients
