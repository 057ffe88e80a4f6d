package analysis

import (
	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/platform"
)

// State enumerates the analysis state machine.
//
// Loading transitions to exactly one of Analyzed, UnsupportedPlatform,
// NeedsAuthorization or Failed. When a non-default behaviour is
// configured, Analyzed is followed by LoadingBehaviour and
// CompletedBehaviour.
type State int

const (
	Loading State = iota
	Analyzed
	UnsupportedPlatform
	NeedsAuthorization
	Failed
	LoadingBehaviour
	CompletedBehaviour
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Analyzed:
		return "analyzed"
	case UnsupportedPlatform:
		return "unsupported_platform"
	case NeedsAuthorization:
		return "needs_authorization"
	case Failed:
		return "failed"
	case LoadingBehaviour:
		return "loading_behaviour"
	case CompletedBehaviour:
		return "completed_behaviour"
	default:
		return ""
	}
}

// Update represents a state transition event during an analysis run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type Update struct {
	State     State
	Platform  platform.Platform     // detected source, or the platform needing authorization
	Behaviour platform.Behaviour    // set for behaviour states
	Analysis  *models.TrackAnalysis // set from Analyzed onward
	Err       error                 // set for Failed
}

// Result is the terminal outcome of an analysis run.
type Result struct {
	State     State
	Platform  platform.Platform // detected source platform
	Behaviour platform.Behaviour

	// AuthPlatform names the platform that must be authorized when
	// State is NeedsAuthorization; it may differ from Platform when a
	// copy/share/open behaviour targets an unauthorized platform.
	AuthPlatform platform.Platform

	// Analysis is the assembled record; nil before the commit point.
	Analysis *models.TrackAnalysis

	// LoadedAvailability reports that the fan-out completed and every
	// platform URL field holds its final value.
	LoadedAvailability bool

	Err error
}
