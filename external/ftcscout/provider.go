package ftcscout

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/ftc-team-stats/internal/domain/competition"
)

func (c *Client) TeamEvents(ctx context.Context, teamNumber, season int) ([]competition.NormalizedEvent, error) {
	data, err := c.Execute(ctx, teamEventsQuery, teamSeasonVariables(teamNumber, season))
	if err != nil {
		return nil, fmt.Errorf("fetch team events team=%d season=%d: %w", teamNumber, season, err)
	}
	return NormalizeEvents(data)
}

func (c *Client) TeamMatches(ctx context.Context, teamNumber, season int) ([]competition.MatchParticipation, error) {
	data, err := c.Execute(ctx, teamMatchesQuery, teamSeasonVariables(teamNumber, season))
	if err != nil {
		return nil, fmt.Errorf("fetch team matches team=%d season=%d: %w", teamNumber, season, err)
	}
	return NormalizeMatches(data)
}

func (c *Client) EventMatchResults(ctx context.Context, season int, eventCode string) ([]competition.MatchResult, error) {
	eventCode = strings.TrimSpace(eventCode)
	if eventCode == "" {
		return nil, fmt.Errorf("event code is required")
	}

	data, err := c.Execute(ctx, eventMatchesQuery, map[string]any{
		"season":    season,
		"eventCode": eventCode,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch event matches event=%s season=%d: %w", eventCode, season, err)
	}
	return NormalizeMatchResults(data)
}

func (c *Client) TeamAwards(ctx context.Context, teamNumber, season int) ([]competition.AwardRecord, error) {
	data, err := c.Execute(ctx, teamAwardsQuery, teamSeasonVariables(teamNumber, season))
	if err != nil {
		return nil, fmt.Errorf("fetch team awards team=%d season=%d: %w", teamNumber, season, err)
	}
	return NormalizeAwards(data)
}

func teamSeasonVariables(teamNumber, season int) map[string]any {
	return map[string]any{
		"teamNumber": teamNumber,
		"season":     season,
	}
}
