package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/chart"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/cache"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	defaultStatsLoadTimeout   = 10 * time.Second
	defaultMatchResultWorkers = 4

	taskStats  = "stats"
	taskEvents = "events"
	taskAwards = "awards"

	panelStateData   = "data"
	panelStateEmpty  = "empty"
	panelStateFailed = "failed"
)

type StatsServiceConfig struct {
	Team               competition.TeamIdentity
	TeamPageURL        string
	LoadTimeout        time.Duration
	MatchResultWorkers int
	Logger             *logging.Logger
	Observer           LoadObserver
}

// StatsService loads one team's competition statistics into a Presenter.
type StatsService struct {
	provider   CompetitionProvider
	team       competition.TeamIdentity
	teamURL    string
	timeout    time.Duration
	workers    int
	logger     *logging.Logger
	observer   LoadObserver
	lastEvents *cache.Latest[[]competition.NormalizedEvent]
}

type LoadOptions struct {
	// Season overrides the team's current season when > 0.
	Season int
}

type TaskReport struct {
	Task         string
	ServedSeason int
	Visible      bool
	Err          error
}

type LoadReport struct {
	Team        int
	Season      int
	Tasks       []TaskReport
	TimedOut    bool
	Unavailable bool
	Elapsed     time.Duration
}

func NewStatsService(provider CompetitionProvider, cfg StatsServiceConfig) *StatsService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.LoadTimeout
	if timeout <= 0 {
		timeout = defaultStatsLoadTimeout
	}
	workers := cfg.MatchResultWorkers
	if workers <= 0 {
		workers = defaultMatchResultWorkers
	}
	var observer LoadObserver = nopLoadObserver{}
	if cfg.Observer != nil {
		observer = cfg.Observer
	}
	team := cfg.Team
	if team.Number <= 0 || team.CurrentSeason <= 0 {
		team = competition.NewTeamIdentity(team.Number, team.CurrentSeason, time.Now().UTC())
	}

	return &StatsService{
		provider:   provider,
		team:       team,
		teamURL:    cfg.TeamPageURL,
		timeout:    timeout,
		workers:    workers,
		logger:     logger.Named("stats"),
		observer:   observer,
		lastEvents: cache.NewLatest[[]competition.NormalizedEvent](),
	}
}

func (s *StatsService) Team() competition.TeamIdentity {
	return s.team
}

func (s *StatsService) TeamPageURL() string {
	return s.teamURL
}

// LastEvents returns the most recently fetched event collection from any
// load, including loads that finished after their deadline.
func (s *StatsService) LastEvents() ([]competition.NormalizedEvent, time.Time, bool) {
	events, ok := s.lastEvents.Load()
	if !ok {
		return nil, time.Time{}, false
	}
	return events, s.lastEvents.StoredAt(), true
}

// Load runs the stats, events and awards tasks concurrently and returns once
// all of them settle or the load timeout elapses, whichever is first. Tasks
// still running at the deadline keep running, but their writes to the
// presenter are dropped.
func (s *StatsService) Load(ctx context.Context, presenter Presenter, opts LoadOptions) LoadReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Load")
	defer span.End()

	started := time.Now()
	season := opts.Season
	if season <= 0 {
		season = s.team.CurrentSeason
	}

	run := &loadRun{
		svc:           s,
		out:           newGatedPresenter(presenter),
		season:        season,
		events:        cache.NewLatest[[]competition.NormalizedEvent](),
		eventsSettled: make(chan struct{}),
	}
	run.out.ShowLoading()

	taskCtx := context.WithoutCancel(ctx)
	var wg conc.WaitGroup
	wg.Go(func() { run.loadStats(taskCtx) })
	wg.Go(func() { run.loadEvents(taskCtx) })
	wg.Go(func() { run.loadAwards(taskCtx) })

	settled := make(chan struct{})
	go func() {
		defer close(settled)
		if recovered := wg.WaitAndRecover(); recovered != nil {
			s.logger.ErrorContext(taskCtx, "stats load task panicked", "panic", recovered.Value, "stack", string(recovered.Stack))
		}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	timedOut := false
	select {
	case <-settled:
	case <-timer.C:
		timedOut = true
	case <-ctx.Done():
		timedOut = true
	}

	unavailable := run.out.finish(s.teamURL)
	elapsed := time.Since(started)
	s.observer.ObserveLoad(elapsed, timedOut)

	report := LoadReport{
		Team:        s.team.Number,
		Season:      season,
		Tasks:       run.reports(),
		TimedOut:    timedOut,
		Unavailable: unavailable,
		Elapsed:     elapsed,
	}
	if timedOut {
		s.logger.WarnContext(ctx, "stats load deadline reached before all tasks settled",
			"team", s.team.Number,
			"season", season,
			"timeout", s.timeout,
			"unavailable", unavailable,
		)
	} else {
		s.logger.InfoContext(ctx, "stats load finished",
			"team", s.team.Number,
			"season", season,
			"elapsed_ms", elapsed.Milliseconds(),
			"unavailable", unavailable,
		)
	}
	return report
}

// loadRun is the state of one Load. events is the run's own event cache,
// written once by the events task and read by the chart step.
type loadRun struct {
	svc           *StatsService
	out           *gatedPresenter
	season        int
	events        *cache.Latest[[]competition.NormalizedEvent]
	eventsSettled chan struct{}

	mu    sync.Mutex
	tasks []TaskReport
}

func (r *loadRun) record(report TaskReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, report)
}

func (r *loadRun) reports() []TaskReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TaskReport, len(r.tasks))
	copy(out, r.tasks)
	return out
}

func (r *loadRun) observeFallback(task string, served int) {
	if served != r.season {
		r.svc.observer.ObserveSeasonFallback(task)
	}
}

func (r *loadRun) hide(panel Panel, state string) {
	if r.out.HidePanel(panel) {
		r.svc.observer.ObservePanel(string(panel), state)
	}
}

func (r *loadRun) shown(panel Panel, ok bool) {
	if ok {
		r.svc.observer.ObservePanel(string(panel), panelStateData)
	}
}

func (r *loadRun) loadStats(ctx context.Context) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.loadStats")
	defer span.End()

	svc := r.svc
	team := svc.team.Number

	events, eventsSeason, eventsErr := WithSeasonFallback(ctx, r.season, func(ctx context.Context, season int) ([]competition.NormalizedEvent, error) {
		return svc.provider.TeamEvents(ctx, team, season)
	})
	matches, matchesSeason, matchesErr := WithSeasonFallback(ctx, r.season, func(ctx context.Context, season int) ([]competition.MatchParticipation, error) {
		return svc.provider.TeamMatches(ctx, team, season)
	})
	r.observeFallback(taskStats, eventsSeason)

	if eventsErr != nil && matchesErr != nil {
		svc.logger.WarnContext(ctx, "stats unavailable from both aggregation paths",
			"team", team,
			"events_error", eventsErr,
			"matches_error", matchesErr,
		)
		r.hide(PanelQuickStats, panelStateFailed)
		r.hide(PanelCharts, panelStateFailed)
		r.hide(PanelMatches, panelStateFailed)
		r.record(TaskReport{Task: taskStats, ServedSeason: eventsSeason, Err: fmt.Errorf("load stats: %w", eventsErr)})
		return
	}

	summary := r.summarize(ctx, events, eventsSeason, eventsErr, matches, matchesSeason, matchesErr)
	visible := r.out.ShowQuickStats(summary)
	r.shown(PanelQuickStats, visible)
	r.record(TaskReport{Task: taskStats, ServedSeason: summary.Season, Visible: visible})

	// Charts read the events task's cache, never a fresh fetch.
	<-r.eventsSettled
	cached, _ := r.events.Load()
	r.shown(PanelCharts, r.out.ShowCharts(chart.Build(summary, cached)))

	if matchesErr != nil {
		svc.logger.WarnContext(ctx, "team matches unavailable", "team", team, "error", matchesErr)
		r.hide(PanelMatches, panelStateFailed)
		return
	}
	r.showMatches(ctx, matches, matchesSeason)
}

func (r *loadRun) summarize(
	ctx context.Context,
	events []competition.NormalizedEvent,
	eventsSeason int,
	eventsErr error,
	matches []competition.MatchParticipation,
	matchesSeason int,
	matchesErr error,
) competition.SeasonStatsSummary {
	var fromEvents, fromMatches competition.SeasonStatsSummary
	if eventsErr == nil {
		fromEvents = competition.Aggregate(eventsSeason, events)
	} else {
		r.svc.logger.WarnContext(ctx, "team events unavailable for stats, using match count", "error", eventsErr)
	}
	if matchesErr == nil {
		fromMatches = competition.SummaryFromMatchCount(matchesSeason, matches)
	}

	if eventsErr == nil && matchesErr == nil && eventsSeason == matchesSeason {
		if d, diverged := competition.CompareAggregationPaths(fromEvents, fromMatches); diverged {
			r.svc.observer.ObserveAggregationDivergence()
			r.svc.logger.WarnContext(ctx, "aggregation paths disagree on matches played",
				"season", eventsSeason,
				"event_stats_matches", d.EventMatches,
				"counted_matches", d.CountedMatch,
			)
		}
	}

	switch {
	case eventsErr != nil:
		return fromMatches
	case matchesErr != nil:
		return fromEvents
	default:
		return competition.PreferSummary(fromEvents, fromMatches)
	}
}

func (r *loadRun) showMatches(ctx context.Context, matches []competition.MatchParticipation, season int) {
	results := r.fetchMatchResults(ctx, matches, season)
	recent := competition.SelectRecent(competition.ResolveOutcomes(matches, results), competition.RecentMatchLimit)
	if len(recent) == 0 {
		r.hide(PanelMatches, panelStateEmpty)
		return
	}
	r.shown(PanelMatches, r.out.ShowMatches(recent))
}

// fetchMatchResults loads every event's match results on a bounded pool. An
// event whose results cannot be fetched leaves its matches Unknown.
func (r *loadRun) fetchMatchResults(ctx context.Context, matches []competition.MatchParticipation, season int) map[competition.MatchKey]competition.MatchResult {
	codes := competition.EventCodes(matches)
	results := make(map[competition.MatchKey]competition.MatchResult, len(matches))
	if len(codes) == 0 {
		return results
	}

	svc := r.svc
	pool, err := ants.NewPool(min(svc.workers, len(codes)))
	if err != nil {
		svc.logger.ErrorContext(ctx, "create match result worker pool failed", "error", err)
		return results
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, code := range codes {
		code := code
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			items, fetchErr := svc.provider.EventMatchResults(ctx, season, code)
			if fetchErr != nil {
				svc.logger.WarnContext(ctx, "event match results unavailable", "event_code", code, "season", season, "error", fetchErr)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, item := range items {
				results[competition.MatchKey{EventCode: code, MatchID: item.MatchID}] = item
			}
		}); err != nil {
			workers.Done()
			svc.logger.WarnContext(ctx, "submit match result task failed", "event_code", code, "error", err)
		}
	}
	workers.Wait()
	return results
}

func (r *loadRun) loadEvents(ctx context.Context) {
	defer close(r.eventsSettled)

	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.loadEvents")
	defer span.End()

	svc := r.svc
	events, season, err := WithSeasonFallback(ctx, r.season, func(ctx context.Context, season int) ([]competition.NormalizedEvent, error) {
		return svc.provider.TeamEvents(ctx, svc.team.Number, season)
	})
	r.observeFallback(taskEvents, season)
	if err != nil {
		svc.logger.WarnContext(ctx, "team events unavailable", "team", svc.team.Number, "season", season, "error", err)
		r.hide(PanelEvents, panelStateFailed)
		r.record(TaskReport{Task: taskEvents, ServedSeason: season, Err: fmt.Errorf("load events: %w", err)})
		return
	}

	r.events.Store(events)
	svc.lastEvents.Store(events)

	if len(events) == 0 {
		r.hide(PanelEvents, panelStateEmpty)
		r.record(TaskReport{Task: taskEvents, ServedSeason: season})
		return
	}
	visible := r.out.ShowEvents(competition.SortEvents(events, true))
	r.shown(PanelEvents, visible)
	r.record(TaskReport{Task: taskEvents, ServedSeason: season, Visible: visible})
}

func (r *loadRun) loadAwards(ctx context.Context) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.loadAwards")
	defer span.End()

	svc := r.svc
	awards, season, err := WithSeasonFallback(ctx, r.season, func(ctx context.Context, season int) ([]competition.AwardRecord, error) {
		return svc.provider.TeamAwards(ctx, svc.team.Number, season)
	})
	r.observeFallback(taskAwards, season)
	if err != nil {
		svc.logger.WarnContext(ctx, "team awards unavailable", "team", svc.team.Number, "season", season, "error", err)
		r.hide(PanelAwards, panelStateFailed)
		r.record(TaskReport{Task: taskAwards, ServedSeason: season, Err: fmt.Errorf("load awards: %w", err)})
		return
	}

	if len(awards) == 0 {
		r.hide(PanelAwards, panelStateEmpty)
		r.record(TaskReport{Task: taskAwards, ServedSeason: season})
		return
	}
	visible := r.out.ShowAwards(competition.SortAwards(awards))
	r.shown(PanelAwards, visible)
	r.record(TaskReport{Task: taskAwards, ServedSeason: season, Visible: visible})
}
