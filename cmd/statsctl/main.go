package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/ftc-team-stats/internal/app"
	"github.com/riskibarqy/ftc-team-stats/internal/config"
	"github.com/riskibarqy/ftc-team-stats/internal/platform/logging"
	"github.com/riskibarqy/ftc-team-stats/internal/presentation"
	"github.com/riskibarqy/ftc-team-stats/internal/usecase"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred flushes complete before exit.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	if !knownCommand(cmd) {
		printUsage(stderr)
		return 2
	}
	season, err := parseSeason(args[1:])
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	// Logs go to stderr so stdout stays machine readable.
	logger := logging.New(stderr, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	components, err := app.NewComponents(cfg, logger)
	if err != nil {
		logger.Error("build components failed", "error", err)
		return 1
	}

	page := presentation.NewPage(components.Team.Number, components.Charts, logger)
	report := components.Stats.Load(context.Background(), page, usecase.LoadOptions{Season: season})
	snap := page.Snapshot()

	if cmd == "page" {
		view := presentation.NewPageView(presentation.DefaultLanguage, snap)
		if err := components.Renderer.RenderPage(stdout, view); err != nil {
			logger.Error("render page failed", "error", err)
			return 1
		}
		return 0
	}

	if err := printJSON(stdout, selectOutput(cmd, snap, report)); err != nil {
		logger.Error("encode output failed", "error", err)
		return 1
	}
	if report.Unavailable {
		return 1
	}
	return 0
}

func knownCommand(cmd string) bool {
	switch cmd {
	case "summary", "events", "matches", "awards", "charts", "snapshot", "report", "page":
		return true
	default:
		return false
	}
}

func selectOutput(cmd string, snap presentation.Snapshot, report usecase.LoadReport) any {
	switch cmd {
	case "summary":
		return snap.QuickStats
	case "events":
		return snap.Events
	case "matches":
		return snap.Matches
	case "awards":
		return snap.Awards
	case "charts":
		return snap.Charts
	case "report":
		return reportOutput(report)
	default:
		return snap
	}
}

type taskOutput struct {
	Task         string `json:"task"`
	ServedSeason int    `json:"servedSeason,omitempty"`
	Visible      bool   `json:"visible"`
	Error        string `json:"error,omitempty"`
}

func reportOutput(report usecase.LoadReport) map[string]any {
	tasks := make([]taskOutput, 0, len(report.Tasks))
	for _, task := range report.Tasks {
		item := taskOutput{Task: task.Task, ServedSeason: task.ServedSeason, Visible: task.Visible}
		if task.Err != nil {
			item.Error = task.Err.Error()
		}
		tasks = append(tasks, item)
	}
	return map[string]any{
		"team":        report.Team,
		"season":      report.Season,
		"timedOut":    report.TimedOut,
		"unavailable": report.Unavailable,
		"elapsedMs":   report.Elapsed.Milliseconds(),
		"tasks":       tasks,
	}
}

func printJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func parseSeason(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}

	season, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid season %q: %w", args[0], err)
	}
	if season <= 0 {
		return 0, fmt.Errorf("season must be > 0")
	}

	return season, nil
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <summary|events|matches|awards|charts|snapshot|report|page> [season]\n", name)
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s summary\n", name)
	fmt.Fprintf(w, "  %s events 2024\n", name)
	fmt.Fprintf(w, "  %s page > stats.html\n", name)
}
