package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestWithSeasonFallback(t *testing.T) {
	t.Parallel()

	errCurrent := errors.New("current season failed")
	errPrevious := errors.New("previous season failed")

	t.Run("current season succeeds", func(t *testing.T) {
		t.Parallel()

		var calls []int
		got, season, err := WithSeasonFallback(context.Background(), 2025, func(_ context.Context, season int) (string, error) {
			calls = append(calls, season)
			return "data-2025", nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "data-2025" || season != 2025 {
			t.Fatalf("unexpected result: got=%s season=%d", got, season)
		}
		if len(calls) != 1 {
			t.Fatalf("unexpected call count: got=%d want=1", len(calls))
		}
	})

	t.Run("falls back to previous season", func(t *testing.T) {
		t.Parallel()

		got, season, err := WithSeasonFallback(context.Background(), 2025, func(_ context.Context, season int) (int, error) {
			if season == 2025 {
				return 0, errCurrent
			}
			return season * 10, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 20240 || season != 2024 {
			t.Fatalf("unexpected result: got=%d season=%d", got, season)
		}
	})

	t.Run("returns the second failure and stops", func(t *testing.T) {
		t.Parallel()

		var calls []int
		_, season, err := WithSeasonFallback(context.Background(), 2025, func(_ context.Context, season int) ([]int, error) {
			calls = append(calls, season)
			if season == 2025 {
				return nil, errCurrent
			}
			return nil, errPrevious
		})
		if !errors.Is(err, errPrevious) || errors.Is(err, errCurrent) {
			t.Fatalf("expected previous season error, got %v", err)
		}
		if season != 2024 {
			t.Fatalf("unexpected season: got=%d want=2024", season)
		}
		if len(calls) != 2 || calls[0] != 2025 || calls[1] != 2024 {
			t.Fatalf("unexpected attempts: %+v", calls)
		}
	})
}
