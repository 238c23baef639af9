package ai

import (
	"context"
	"fmt"
	"sort"

	"github.com/sentiment_dashboard/backend/internal/models"
	"github.com/sentiment_dashboard/backend/internal/utils"
)

// MockGenerator produces rule-based recommendations. Output depends only on
// its input, so repeated runs over the same data give the same drafts.
type MockGenerator struct {
	ModelVersion string
	MaxQuickWins int
}

var quickWinImpacts = []string{
	"Fast improvement in customer satisfaction",
	"Low cost, visible win for customers",
	"Reduces repeat complaints quickly",
}

func (m MockGenerator) Name() string {
	if m.ModelVersion == "" {
		return "mock-v1"
	}
	return m.ModelVersion
}

func (m MockGenerator) Generate(ctx context.Context, in Input) ([]Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := m.MaxQuickWins
	if limit <= 0 {
		limit = 2
	}

	var drafts []Draft
	for i, it := range in.QuickWins {
		if i >= limit {
			break
		}
		drafts = append(drafts, Draft{
			Title:       fmt.Sprintf("Prioritize %s", it.Title),
			Description: fmt.Sprintf("%s scores %d/10 on impact for %d/10 effort. Schedule it in the next cycle.", it.Title, it.Impact, it.Effort),
			Priority:    models.PriorityHigh,
			Impact:      quickWinImpacts[utils.StableIndex(it.Title, len(quickWinImpacts))],
		})
	}

	if weakest, ok := weakestRegion(in.Regions); ok && weakest.SentimentScore < in.Average {
		priority := models.PriorityMedium
		if in.Average-weakest.SentimentScore >= 1 {
			priority = models.PriorityHigh
		}
		drafts = append(drafts, Draft{
			Title:       fmt.Sprintf("Investigate sentiment in %s", weakest.Region),
			Description: fmt.Sprintf("%s scores %.1f against a %.1f average across regions.", weakest.Region, weakest.SentimentScore, in.Average),
			Priority:    priority,
			Impact:      "Closes the gap with the strongest regions",
		})
	}

	if len(drafts) == 0 {
		drafts = append(drafts, Draft{
			Title:       "Keep monitoring feedback channels",
			Description: "No quick wins or lagging regions were found in the current data.",
			Priority:    models.PriorityLow,
			Impact:      "Maintains current satisfaction levels",
		})
	}
	return drafts, nil
}

func weakestRegion(regions []models.RegionalSentiment) (models.RegionalSentiment, bool) {
	if len(regions) == 0 {
		return models.RegionalSentiment{}, false
	}
	sorted := append([]models.RegionalSentiment(nil), regions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentimentScore < sorted[j].SentimentScore
	})
	return sorted[0], true
}
