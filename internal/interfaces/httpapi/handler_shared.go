package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/ftc-team-stats/internal/presentation"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type statsQuery struct {
	Season int    `validate:"omitempty,gte=2019,lte=2100"`
	Lang   string `validate:"omitempty,oneof=en es"`
}

type healthDTO struct {
	Status          string `json:"status"`
	EventsFetchedAt string `json:"eventsFetchedAt,omitempty"`
	CachedEvents    int    `json:"cachedEvents"`
}

type statsResponseDTO struct {
	Report   loadReportDTO         `json:"report"`
	Snapshot presentation.Snapshot `json:"snapshot"`
}

type loadReportDTO struct {
	Team        int             `json:"team"`
	Season      int             `json:"season"`
	TimedOut    bool            `json:"timedOut"`
	Unavailable bool            `json:"unavailable"`
	ElapsedMS   int64           `json:"elapsedMs"`
	Tasks       []taskReportDTO `json:"tasks"`
}

type taskReportDTO struct {
	Task         string `json:"task"`
	ServedSeason int    `json:"servedSeason,omitempty"`
	Visible      bool   `json:"visible"`
	Error        string `json:"error,omitempty"`
}

func loadReportToDTO(report usecase.LoadReport) loadReportDTO {
	tasks := make([]taskReportDTO, 0, len(report.Tasks))
	for _, task := range report.Tasks {
		item := taskReportDTO{
			Task:         task.Task,
			ServedSeason: task.ServedSeason,
			Visible:      task.Visible,
		}
		if task.Err != nil {
			item.Error = task.Err.Error()
		}
		tasks = append(tasks, item)
	}

	return loadReportDTO{
		Team:        report.Team,
		Season:      report.Season,
		TimedOut:    report.TimedOut,
		Unavailable: report.Unavailable,
		ElapsedMS:   report.Elapsed.Milliseconds(),
		Tasks:       tasks,
	}
}
