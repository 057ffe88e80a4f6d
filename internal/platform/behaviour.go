package platform

import (
	"fmt"
	"strings"

	"github.com/giuliopime/crossfade/internal/shared"
)

// Action is the kind of post-analysis behaviour.
type Action int

const (
	ShowAnalysis Action = iota
	Copy
	Share
	Open
)

// Behaviour is a user-configured action to take automatically once a
// track from a given source platform has been analyzed. For Copy, Share
// and Open the Target platform names whose link the action applies to.
type Behaviour struct {
	Action Action
	Target Platform
}

// Encode returns the compact string form used in configuration:
// "show_analysis" or "{action}:{platform_id}".
func (b Behaviour) Encode() string {
	switch b.Action {
	case Copy:
		return "copy:" + b.Target.ID()
	case Share:
		return "share:" + b.Target.ID()
	case Open:
		return "open:" + b.Target.ID()
	default:
		return "show_analysis"
	}
}

// DisplayName returns the human readable behaviour name.
func (b Behaviour) DisplayName() string {
	switch b.Action {
	case Copy:
		return "Copy " + b.Target.DisplayName()
	case Share:
		return "Share " + b.Target.DisplayName()
	case Open:
		return "Open " + b.Target.DisplayName()
	default:
		return "Show Analysis"
	}
}

// ParseBehaviour decodes the compact string form of a behaviour.
// Unknown actions or platform ids are an error, never a silent default.
func ParseBehaviour(raw string) (Behaviour, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")

	if len(parts) == 1 {
		if parts[0] != "show_analysis" {
			return Behaviour{}, fmt.Errorf("%w: %q", shared.ErrUnknownBehaviour, raw)
		}
		return Behaviour{Action: ShowAnalysis}, nil
	}

	if len(parts) != 2 {
		return Behaviour{}, fmt.Errorf("%w: %q", shared.ErrUnknownBehaviour, raw)
	}

	target, err := Parse(parts[1])
	if err != nil {
		return Behaviour{}, fmt.Errorf("%w: %q: %v", shared.ErrUnknownBehaviour, raw, err)
	}

	switch parts[0] {
	case "copy":
		return Behaviour{Action: Copy, Target: target}, nil
	case "share":
		return Behaviour{Action: Share, Target: target}, nil
	case "open":
		return Behaviour{Action: Open, Target: target}, nil
	default:
		return Behaviour{}, fmt.Errorf("%w: action %q", shared.ErrUnknownBehaviour, parts[0])
	}
}

// Behaviours maps each source platform to its configured behaviour.
type Behaviours map[Platform]Behaviour

// ParseBehaviours decodes a platform-id keyed map of encoded behaviours,
// as read from the [behaviours] configuration section.
func ParseBehaviours(raw map[string]string) (Behaviours, error) {
	behaviours := make(Behaviours, len(raw))
	for id, encoded := range raw {
		p, err := Parse(id)
		if err != nil {
			return nil, err
		}
		b, err := ParseBehaviour(encoded)
		if err != nil {
			return nil, fmt.Errorf("behaviour for %s: %w", p.ID(), err)
		}
		behaviours[p] = b
	}
	return behaviours, nil
}

// For returns the configured behaviour for the given source platform,
// defaulting to ShowAnalysis when none is set.
func (bs Behaviours) For(p Platform) Behaviour {
	if b, ok := bs[p]; ok {
		return b
	}
	return Behaviour{Action: ShowAnalysis}
}
