package service

import (
	"context"

	"github.com/sentiment_dashboard/backend/internal/models"
)

// Fields of Summary that have no data source yet. They stay null in the
// response instead of carrying made-up constants.
var notComputedFields = []string{
	"responseRate",
	"activeUsers",
	"sentimentChange",
	"feedbackChange",
	"responseRateChange",
	"activeUsersChange",
}

type Summary struct {
	AvgSentiment       string   `json:"avgSentiment"`
	TotalFeedback      string   `json:"totalFeedback"`
	ResponseRate       *string  `json:"responseRate"`
	ActiveUsers        *string  `json:"activeUsers"`
	SentimentChange    *string  `json:"sentimentChange"`
	FeedbackChange     *string  `json:"feedbackChange"`
	ResponseRateChange *string  `json:"responseRateChange"`
	ActiveUsersChange  *string  `json:"activeUsersChange"`
	NotComputed        []string `json:"notComputed"`
}

func BuildSummary(regions []models.RegionalSentiment, feedbackCount int) Summary {
	return Summary{
		AvgSentiment:  FormatScore(AverageSentiment(regions)),
		TotalFeedback: FormatCount(feedbackCount),
		NotComputed:   append([]string(nil), notComputedFields...),
	}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	regions, err := s.Repo.ListRegionalSentiment(ctx)
	if err != nil {
		return Summary{}, err
	}
	count, err := s.Repo.CountFeedback(ctx)
	if err != nil {
		return Summary{}, err
	}
	return BuildSummary(regions, count), nil
}
