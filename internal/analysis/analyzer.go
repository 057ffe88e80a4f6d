package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/giuliopime/crossfade/internal/clients"
	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/platform"
	"github.com/giuliopime/crossfade/internal/shared"
)

// HistoryStore is the persistence seam consumed by the analyzer.
type HistoryStore interface {
	Upsert(analysis *models.TrackAnalysis) error
}

// Actions performs the side effects behind copy/share/open behaviours.
// Injected so tests can observe actions without touching the system.
type Actions interface {
	Copy(text string) error
	Share(analysis *models.TrackAnalysis, url string) error
	Open(url string) error
}

// Analyzer runs the track analysis state machine.
type Analyzer struct {
	clients      clients.Registry
	store        HistoryStore
	actions      Actions
	behaviours   platform.Behaviours
	fetchTimeout time.Duration
	logger       *log.Logger
	now          func() time.Time
}

// AnalyzerOpts contains configuration options for creating an Analyzer.
type AnalyzerOpts struct {
	Clients      clients.Registry
	Store        HistoryStore
	Actions      Actions
	Behaviours   platform.Behaviours
	FetchTimeout time.Duration
	Logger       *log.Logger
	Now          func() time.Time
}

// NewAnalyzer creates a new Analyzer with the provided dependencies.
func NewAnalyzer(opts AnalyzerOpts) *Analyzer {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Behaviours == nil {
		opts.Behaviours = platform.Behaviours{}
	}

	return &Analyzer{
		clients:      opts.Clients,
		store:        opts.Store,
		actions:      opts.Actions,
		behaviours:   opts.Behaviours,
		fetchTimeout: opts.FetchTimeout,
		logger:       opts.Logger,
		now:          opts.Now,
	}
}

// sendUpdate sends a state update through the channel without blocking.
// Uses select with default so progress reporting never stalls the run.
func (a *Analyzer) sendUpdate(updates chan<- Update, update Update) {
	if updates == nil {
		return
	}
	select {
	case updates <- update:
	default:
	}
}

// Analyze runs the full analysis pipeline for one shared track URL.
//
// The returned Result always carries a terminal state; Result.Err is
// only set when State is Failed. Re-running an analysis for the same
// URL replaces the persisted record instead of duplicating it.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string, updates chan<- Update) *Result {
	a.sendUpdate(updates, Update{State: Loading})

	source, err := platform.Detect(rawURL)
	if err != nil {
		if errors.Is(err, shared.ErrUnsupportedPlatform) {
			a.logger.Info("unsupported platform", "url", rawURL)
			return &Result{State: UnsupportedPlatform, Err: nil}
		}
		return a.fail(updates, Result{}, err)
	}

	client, ok := a.clients.For(source)
	if !ok || !client.IsAuthorized() {
		a.logger.Info("platform not authorized", "platform", source.ID())
		result := Result{State: NeedsAuthorization, Platform: source, AuthPlatform: source}
		a.sendUpdate(updates, Update{State: NeedsAuthorization, Platform: source})
		return &result
	}

	info, err := a.fetchByURL(ctx, client, rawURL)
	if err != nil {
		if errors.Is(err, shared.ErrUnauthenticated) {
			result := Result{State: NeedsAuthorization, Platform: source, AuthPlatform: source}
			a.sendUpdate(updates, Update{State: NeedsAuthorization, Platform: source})
			return &result
		}
		return a.fail(updates, Result{Platform: source}, err)
	}

	analysis := info.ToAnalysis(a.now())
	behaviour := a.behaviours.For(source)

	// Commit point: the caller may display partial results from here on.
	a.sendUpdate(updates, Update{State: Analyzed, Platform: source, Analysis: analysis})

	if behaviour.Action == platform.ShowAnalysis {
		return a.showAnalysis(ctx, updates, source, behaviour, analysis)
	}
	return a.runBehaviour(ctx, updates, source, behaviour, analysis)
}

// showAnalysis fans out matching across every other authorized platform,
// persists the merged record and reports availability as loaded.
func (a *Analyzer) showAnalysis(ctx context.Context, updates chan<- Update, source platform.Platform, behaviour platform.Behaviour, analysis *models.TrackAnalysis) *Result {
	a.fanOut(ctx, source, analysis)

	if err := a.persist(ctx, analysis); err != nil {
		return a.fail(updates, Result{Platform: source, Behaviour: behaviour, Analysis: analysis}, err)
	}

	result := Result{
		State:              Analyzed,
		Platform:           source,
		Behaviour:          behaviour,
		Analysis:           analysis,
		LoadedAvailability: true,
	}
	a.sendUpdate(updates, Update{State: Analyzed, Platform: source, Analysis: analysis})
	return &result
}

// runBehaviour performs the narrow copy/share/open path: fetch only the
// target platform's match, persist, then execute the side effect.
func (a *Analyzer) runBehaviour(ctx context.Context, updates chan<- Update, source platform.Platform, behaviour platform.Behaviour, analysis *models.TrackAnalysis) *Result {
	a.sendUpdate(updates, Update{State: LoadingBehaviour, Platform: source, Behaviour: behaviour, Analysis: analysis})

	target := behaviour.Target

	if target != source {
		client, ok := a.clients.For(target)
		if !ok || !client.IsAuthorized() {
			a.logger.Info("behaviour target not authorized", "platform", target.ID())
			result := Result{State: NeedsAuthorization, Platform: source, Behaviour: behaviour, AuthPlatform: target, Analysis: analysis}
			a.sendUpdate(updates, Update{State: NeedsAuthorization, Platform: target, Behaviour: behaviour, Analysis: analysis})
			return &result
		}

		info, err := a.fetchByTitleArtist(ctx, client, analysis.Title, analysis.ArtistName)
		if err != nil {
			a.logger.Warn("behaviour target fetch failed", "platform", target.ID(), "err", err)
			return a.fail(updates, Result{Platform: source, Behaviour: behaviour, Analysis: analysis}, err)
		}
		analysis.SetURL(target, info.URL)
	}

	if err := a.persist(ctx, analysis); err != nil {
		return a.fail(updates, Result{Platform: source, Behaviour: behaviour, Analysis: analysis}, err)
	}

	targetURL := analysis.URLFor(target)
	if targetURL == "" {
		return a.fail(updates, Result{Platform: source, Behaviour: behaviour, Analysis: analysis},
			fmt.Errorf("%w: no %s link for %q", shared.ErrTrackNotFound, target.DisplayName(), analysis.Title))
	}

	if err := a.executeAction(behaviour, analysis, targetURL); err != nil {
		return a.fail(updates, Result{Platform: source, Behaviour: behaviour, Analysis: analysis}, err)
	}

	result := Result{
		State:     CompletedBehaviour,
		Platform:  source,
		Behaviour: behaviour,
		Analysis:  analysis,
	}
	a.sendUpdate(updates, Update{State: CompletedBehaviour, Platform: source, Behaviour: behaviour, Analysis: analysis})
	return &result
}

// fanOutResult carries one platform's outcome back to the coordinator.
// An empty url means the platform is unavailable for this track.
type fanOutResult struct {
	platform platform.Platform
	url      string
}

// fanOut issues one concurrent title/artist lookup per other authorized
// platform and merges the results into the analysis record.
//
// Workers never touch shared state: each returns (platform, url) over a
// channel and only the coordinating goroutine assigns URL fields. A
// failed or timed-out platform degrades to an empty URL and never
// aborts its siblings.
func (a *Analyzer) fanOut(ctx context.Context, source platform.Platform, analysis *models.TrackAnalysis) {
	results := make(chan fanOutResult)
	pending := 0

	for _, other := range platform.All() {
		if other == source {
			continue
		}

		client, ok := a.clients.For(other)
		if !ok || !client.IsAuthorized() {
			continue
		}

		pending++
		go func(p platform.Platform, c clients.Client) {
			info, err := a.fetchByTitleArtist(ctx, c, analysis.Title, analysis.ArtistName)
			if err != nil {
				if !errors.Is(err, shared.ErrTrackNotFound) {
					a.logger.Warn("platform match failed", "platform", p.ID(), "err", err)
				}
				results <- fanOutResult{platform: p}
				return
			}
			results <- fanOutResult{platform: p, url: info.URL}
		}(other, client)
	}

	for i := 0; i < pending; i++ {
		r := <-results
		if r.url != "" {
			analysis.SetURL(r.platform, r.url)
		}
	}
}

// fetchByURL bounds a source fetch with the per-platform timeout.
func (a *Analyzer) fetchByURL(ctx context.Context, client clients.Client, rawURL string) (*clients.TrackInfo, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()
	return client.FetchByURL(fetchCtx, rawURL)
}

// fetchByTitleArtist bounds a match lookup with the per-platform timeout.
func (a *Analyzer) fetchByTitleArtist(ctx context.Context, client clients.Client, title, artistName string) (*clients.TrackInfo, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()
	return client.FetchByTitleArtist(fetchCtx, title, artistName)
}

// persist upserts the analysis unless the run was cancelled.
func (a *Analyzer) persist(ctx context.Context, analysis *models.TrackAnalysis) error {
	if ctx.Err() != nil {
		a.logger.Info("analysis cancelled, skipping persistence", "id", analysis.ID)
		return nil
	}
	if a.store == nil {
		return nil
	}
	if err := a.store.Upsert(analysis); err != nil {
		return fmt.Errorf("failed to persist analysis: %w", err)
	}
	return nil
}

// executeAction performs the configured behaviour's side effect.
func (a *Analyzer) executeAction(behaviour platform.Behaviour, analysis *models.TrackAnalysis, url string) error {
	if a.actions == nil {
		return fmt.Errorf("%w: no action runner configured", shared.ErrInvalidArgument)
	}

	switch behaviour.Action {
	case platform.Copy:
		return a.actions.Copy(url)
	case platform.Share:
		return a.actions.Share(analysis, url)
	case platform.Open:
		return a.actions.Open(url)
	default:
		return fmt.Errorf("%w: %s", shared.ErrUnknownBehaviour, behaviour.Encode())
	}
}

// fail stamps the Failed state onto a partially built result.
func (a *Analyzer) fail(updates chan<- Update, result Result, err error) *Result {
	a.logger.Error("analysis failed", "err", err)
	result.State = Failed
	result.Err = err
	a.sendUpdate(updates, Update{State: Failed, Platform: result.Platform, Behaviour: result.Behaviour, Analysis: result.Analysis, Err: err})
	return &result
}
