package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/riskibarqy/ftc-team-stats/internal/presentation"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

const languageCookieMaxAge = 365 * 24 * 60 * 60

// StatsLoader runs one statistics load. *usecase.StatsService satisfies it.
type StatsLoader interface {
	Load(ctx context.Context, presenter usecase.Presenter, opts usecase.LoadOptions) usecase.LoadReport
	Team() competition.TeamIdentity
	LastEvents() ([]competition.NormalizedEvent, time.Time, bool)
}

type Handler struct {
	stats     StatsLoader
	renderer  *presentation.Renderer
	charts    presentation.ChartRenderer
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	stats StatsLoader,
	renderer *presentation.Renderer,
	charts presentation.ChartRenderer,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if charts == nil {
		charts = presentation.NewChartJSRenderer()
	}

	return &Handler{
		stats:     stats,
		renderer:  renderer,
		charts:    charts,
		logger:    logger.Named("http"),
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	resp := healthDTO{Status: "ok"}
	if events, fetchedAt, ok := h.stats.LastEvents(); ok {
		resp.EventsFetchedAt = fetchedAt.UTC().Format(time.RFC3339)
		resp.CachedEvents = len(events)
	}
	writeSuccess(ctx, w, http.StatusOK, resp)
}

// GetPage renders the full statistics page for the requested season and
// language. A valid ?lang= also updates the language cookie.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPage")
	defer span.End()

	query, err := h.parseStatsQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	lang := h.resolveLanguage(w, r, query)

	snap, _ := h.load(ctx, query)

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, presentation.NewPageView(lang, snap)); err != nil {
		h.logger.ErrorContext(ctx, "render page failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeHTML(ctx, w, http.StatusOK, buf.Bytes())
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	query, err := h.parseStatsQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, report := h.load(ctx, query)
	writeSuccess(ctx, w, http.StatusOK, statsResponseDTO{
		Report:   loadReportToDTO(report),
		Snapshot: snap,
	})
}

// GetPanel renders a single panel fragment after a full load.
func (h *Handler) GetPanel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPanel")
	defer span.End()

	panel := usecase.Panel(strings.TrimSpace(r.PathValue("panel")))
	if !presentation.KnownPanel(panel) {
		writeError(ctx, w, fmt.Errorf("%w: unknown panel %q", usecase.ErrInvalidInput, panel))
		return
	}
	query, err := h.parseStatsQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, _ := h.load(ctx, query)

	var buf bytes.Buffer
	if err := h.renderer.RenderPanel(&buf, panel, snap); err != nil {
		h.logger.WarnContext(ctx, "render panel failed", "panel", panel, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeHTML(ctx, w, http.StatusOK, buf.Bytes())
}

func (h *Handler) load(ctx context.Context, query statsQuery) (presentation.Snapshot, usecase.LoadReport) {
	page := presentation.NewPage(h.stats.Team().Number, h.charts, h.logger)
	report := h.stats.Load(ctx, page, usecase.LoadOptions{Season: query.Season})
	if report.Unavailable {
		h.logger.WarnContext(ctx, "statistics unavailable",
			"team", report.Team,
			"season", report.Season,
			"timed_out", report.TimedOut,
		)
	}
	return page.Snapshot(), report
}

func (h *Handler) parseStatsQuery(ctx context.Context, r *http.Request) (statsQuery, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.parseStatsQuery")
	defer span.End()

	values := r.URL.Query()
	query := statsQuery{Lang: strings.ToLower(strings.TrimSpace(values.Get("lang")))}
	if raw := strings.TrimSpace(values.Get("season")); raw != "" {
		season, err := strconv.Atoi(raw)
		if err != nil {
			return statsQuery{}, fmt.Errorf("%w: season must be a number", usecase.ErrInvalidInput)
		}
		query.Season = season
	}
	if err := h.validateRequest(ctx, query); err != nil {
		return statsQuery{}, err
	}

	return query, nil
}

// resolveLanguage prefers ?lang=, then the language cookie.
func (h *Handler) resolveLanguage(w http.ResponseWriter, r *http.Request, query statsQuery) presentation.Language {
	if lang, ok := presentation.ParseLanguage(query.Lang); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     presentation.LanguageCookie,
			Value:    string(lang),
			Path:     "/",
			MaxAge:   languageCookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return lang
	}
	if cookie, err := r.Cookie(presentation.LanguageCookie); err == nil {
		lang, _ := presentation.ParseLanguage(cookie.Value)
		return lang
	}
	return presentation.DefaultLanguage
}
