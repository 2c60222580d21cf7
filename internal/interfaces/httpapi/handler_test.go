package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/riskibarqy/ftc-team-stats/internal/presentation"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

type stubStatsLoader struct {
	mu        sync.Mutex
	seasons   []int
	fill      func(p usecase.Presenter)
	events    []competition.NormalizedEvent
	fetchedAt time.Time
}

func (s *stubStatsLoader) Team() competition.TeamIdentity {
	return competition.TeamIdentity{Number: 23954, CurrentSeason: 2024}
}

func (s *stubStatsLoader) Load(_ context.Context, p usecase.Presenter, opts usecase.LoadOptions) usecase.LoadReport {
	s.mu.Lock()
	s.seasons = append(s.seasons, opts.Season)
	s.mu.Unlock()

	season := opts.Season
	if season == 0 {
		season = 2024
	}
	p.ShowLoading()
	if s.fill != nil {
		s.fill(p)
	}
	p.HideLoading()
	return usecase.LoadReport{
		Team:   23954,
		Season: season,
		Tasks: []usecase.TaskReport{
			{Task: "stats", ServedSeason: season, Visible: true},
			{Task: "awards", ServedSeason: season, Err: usecase.ErrDependencyUnavailable},
		},
		Elapsed: 25 * time.Millisecond,
	}
}

func (s *stubStatsLoader) LastEvents() ([]competition.NormalizedEvent, time.Time, bool) {
	if s.fetchedAt.IsZero() {
		return nil, time.Time{}, false
	}
	return s.events, s.fetchedAt, true
}

func (s *stubStatsLoader) requestedSeasons() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.seasons...)
}

type countingHTTPObserver struct {
	mu     sync.Mutex
	routes map[string]int
}

func (c *countingHTTPObserver) ObserveHTTPRequest(route string, code int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.routes == nil {
		c.routes = make(map[string]int)
	}
	c.routes[route]++
	_ = code
}

func newTestRouter(t *testing.T, loader *stubStatsLoader, observer HTTPObserver) http.Handler {
	t.Helper()

	renderer, err := presentation.NewRenderer()
	require.NoError(t, err)

	handler := NewHandler(loader, renderer, nil, logging.NewNop())
	return NewRouter(handler, RouterConfig{
		Logger:             logging.NewNop(),
		CORSAllowedOrigins: []string{"*"},
		Metrics:            observer,
	})
}

func quickStatsFill(p usecase.Presenter) {
	p.ShowQuickStats(competition.SeasonStatsSummary{Season: 2024, Wins: 5, Losses: 3, Ties: 1, TotalMatches: 9, Detailed: true})
	p.HidePanel(usecase.PanelAwards)
}

func TestGetStats_ReturnsReportAndSnapshot(t *testing.T) {
	t.Parallel()

	loader := &stubStatsLoader{fill: quickStatsFill}
	router := newTestRouter(t, loader, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/stats?season=2023", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	var body struct {
		Data statsResponseDTO `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2023, body.Data.Report.Season)
	require.Equal(t, int64(25), body.Data.Report.ElapsedMS)
	require.Len(t, body.Data.Report.Tasks, 2)
	require.Equal(t, usecase.ErrDependencyUnavailable.Error(), body.Data.Report.Tasks[1].Error)
	require.Equal(t, "55.6%", body.Data.Snapshot.QuickStats.WinRate)
	require.Equal(t, presentation.PanelHidden, body.Data.Snapshot.Panels["awards"])
	require.False(t, body.Data.Snapshot.Loading)
	require.Equal(t, []int{2023}, loader.requestedSeasons())
}

func TestGetStats_RejectsInvalidQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{name: "non numeric season", query: "season=abc"},
		{name: "season out of range", query: "season=1999"},
		{name: "unknown language", query: "lang=fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &stubStatsLoader{}
			router := newTestRouter(t, loader, nil)

			req := httptest.NewRequest(http.MethodGet, "/v1/stats?"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
			}
			if got := len(loader.requestedSeasons()); got != 0 {
				t.Fatalf("unexpected loads: got=%d want=0", got)
			}
		})
	}
}

func TestGetPage_LanguageFromQuerySetsCookie(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStatsLoader{fill: quickStatsFill}, nil)

	req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "Estadísticas")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, presentation.LanguageCookie, cookies[0].Name)
	require.Equal(t, "es", cookies[0].Value)
}

func TestGetPage_LanguageFromCookie(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStatsLoader{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: presentation.LanguageCookie, Value: "es"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `lang="es"`)
	require.Empty(t, rec.Result().Cookies())
}

func TestGetPanel_RendersFragmentAndRejectsUnknown(t *testing.T) {
	t.Parallel()

	observer := &countingHTTPObserver{}
	loader := &stubStatsLoader{fill: func(p usecase.Presenter) {
		p.ShowUnavailable("https://ftcscout.org/teams/23954")
	}}
	router := newTestRouter(t, loader, observer)

	req := httptest.NewRequest(http.MethodGet, "/v1/stats/panels/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "https://ftcscout.org/teams/23954")
	if strings.Contains(rec.Body.String(), "<html") {
		t.Fatalf("fragment should not contain the page shell")
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/stats/panels/scoreboard", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	if got := len(loader.requestedSeasons()); got != 1 {
		t.Fatalf("unknown panel must be rejected before loading: loads=%d want=1", got)
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()
	require.Equal(t, 2, observer.routes["GET /v1/stats/panels/{panel}"])
}

func TestRequestID_KeepsValidCallerID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &stubStatsLoader{}, nil)

	const callerID = "0b7a9a35-3f55-4b0e-9a51-9d2d5c1f2e10"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, callerID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, callerID, rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	got := rec.Header().Get(requestIDHeader)
	if got == "" || got == "not-a-uuid" {
		t.Fatalf("unexpected request id: %q", got)
	}
}

func TestHealthz_ReportsEventFreshness(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	loaders := map[string]struct {
		loader *stubStatsLoader
		want   healthDTO
	}{
		"before first load": {
			loader: &stubStatsLoader{},
			want:   healthDTO{Status: "ok"},
		},
		"after load": {
			loader: &stubStatsLoader{events: []competition.NormalizedEvent{{Code: "USAZCMP"}}, fetchedAt: fetchedAt},
			want:   healthDTO{Status: "ok", EventsFetchedAt: "2026-03-01T10:00:00Z", CachedEvents: 1},
		},
	}
	for name, tc := range loaders {
		t.Run(name, func(t *testing.T) {
			router := newTestRouter(t, tc.loader, nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Data healthDTO `json:"data"`
			}
			require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.want, body.Data)
		})
	}
}
