package usecase

import "context"

// WithSeasonFallback fetches the current season and, on any error, retries
// exactly once with the previous season. It returns the season of the
// attempt whose result it returns.
func WithSeasonFallback[D any](ctx context.Context, current int, fetch func(ctx context.Context, season int) (D, error)) (D, int, error) {
	data, err := fetch(ctx, current)
	if err == nil {
		return data, current, nil
	}

	previous := current - 1
	data, err = fetch(ctx, previous)
	return data, previous, err
}
