// package matching scores platform search results against a reference
// title/artist pair to decide whether two catalog entries are the same track.
//
// Absence of a good match is a normal NoMatch return, never an error.
// All functions are pure and safe for concurrent use.
package matching

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// NoMatch is returned by [Matcher.FindBestMatch] when no candidate
// scores above the acceptance threshold.
const NoMatch = -1

// DefaultThreshold is the minimum combined title/artist similarity for a
// fuzzy match to be accepted. It trades false positives against false
// negatives in track identity and is deliberately a named, tunable value.
const DefaultThreshold = 0.5

// Candidate is one search result from a platform catalog.
type Candidate struct {
	Title  string
	Artist string
}

// Matcher selects the best matching candidate for a reference track.
// The zero value uses [DefaultThreshold].
type Matcher struct {
	Threshold float64
}

// threshold returns the configured acceptance threshold, defaulting to [DefaultThreshold].
func (m Matcher) threshold() float64 {
	if m.Threshold <= 0 {
		return DefaultThreshold
	}
	return m.Threshold
}

// FindBestMatch returns the index of the candidate best matching the
// target title and artist, or [NoMatch] if none is close enough.
//
// An exact pass runs first: the first candidate whose normalized title
// and artist both equal the normalized target wins outright. Only when
// no exact hit exists does the fuzzy pass score every candidate with
// the averaged title/artist similarity; ties resolve to the earliest
// candidate, mirroring the platform's relevance ordering.
func (m Matcher) FindBestMatch(candidates []Candidate, targetTitle, targetArtist string) int {
	normTitle := Normalize(targetTitle)
	normArtist := Normalize(targetArtist)

	for i, c := range candidates {
		if Normalize(c.Title) == normTitle && Normalize(c.Artist) == normArtist {
			return i
		}
	}

	bestScore := 0.0
	bestIndex := NoMatch

	for i, c := range candidates {
		titleScore := Similarity(normTitle, Normalize(c.Title))
		artistScore := Similarity(normArtist, Normalize(c.Artist))
		combined := (titleScore + artistScore) / 2.0

		if combined > bestScore {
			bestScore = combined
			bestIndex = i
		}
	}

	if bestScore > m.threshold() {
		return bestIndex
	}
	return NoMatch
}

// Similarity returns a score in [0.0, 1.0] indicating how similar two
// strings are: the levenshtein edit distance normalized against the
// longer string's length. Two empty strings are trivially identical.
//
// Callers are expected to pass strings already put through [Normalize].
func Similarity(a, b string) float64 {
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}

	if longer == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return (float64(longer) - float64(dist)) / float64(longer)
}

// Normalize lowercases a string and trims surrounding whitespace and
// punctuation, so cosmetic catalog differences don't defeat matching.
func Normalize(s string) string {
	return strings.TrimFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}
