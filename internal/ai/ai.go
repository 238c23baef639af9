package ai

import (
	"context"

	"github.com/sentiment_dashboard/backend/internal/models"
)

// Input is the slice of dashboard state a generator looks at.
type Input struct {
	QuickWins []models.PriorityItem
	Regions   []models.RegionalSentiment
	Average   float64
}

// Draft is an insight that has not been stored yet.
type Draft struct {
	Title       string
	Description string
	Priority    string
	Impact      string
}

type Generator interface {
	Name() string
	Generate(ctx context.Context, in Input) ([]Draft, error)
}
