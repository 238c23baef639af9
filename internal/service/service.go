package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/sentiment_dashboard/backend/internal/ai"
	"github.com/sentiment_dashboard/backend/internal/models"
)

const (
	DefaultFeedbackLimit = 10
	DefaultInsightLimit  = 20
	MaxListLimit         = 100
)

// Repository is the storage the dashboard reads from and writes to. Creates
// must be durable when they return and visible to later list calls. A limit
// of zero or less on the newest-first lists means no limit.
type Repository interface {
	Ping(ctx context.Context) error

	ListRegionalSentiment(ctx context.Context) ([]models.RegionalSentiment, error)
	UpsertRegionalSentiment(ctx context.Context, r models.RegionalSentiment) (models.RegionalSentiment, error)

	ListFeedback(ctx context.Context, limit int) ([]models.Feedback, error)
	CountFeedback(ctx context.Context) (int, error)
	CreateFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error)

	ListSentimentTrends(ctx context.Context) ([]models.SentimentTrend, error)

	ListPriorityItems(ctx context.Context) ([]models.PriorityItem, error)
	CreatePriorityItem(ctx context.Context, p models.PriorityItem) (models.PriorityItem, error)

	ListAIInsights(ctx context.Context, limit int) ([]models.AIInsight, error)
	CreateAIInsight(ctx context.Context, i models.AIInsight) (models.AIInsight, error)

	ListImpactMetrics(ctx context.Context) ([]models.ImpactMetric, error)
	ListUsageMetrics(ctx context.Context) ([]models.UsageMetric, error)

	ListChannels(ctx context.Context) ([]models.Channel, error)
	CreateChannel(ctx context.Context, c models.Channel) (models.Channel, error)
}

type Service struct {
	Repo          Repository
	Validator     *validator.Validate
	Generator     ai.Generator
	Logger        zerolog.Logger
	FeedbackLimit int
	InsightLimit  int
}

func New(repo Repository, generator ai.Generator, logger zerolog.Logger) *Service {
	return &Service{
		Repo:          repo,
		Validator:     NewValidator(),
		Generator:     generator,
		Logger:        logger,
		FeedbackLimit: DefaultFeedbackLimit,
		InsightLimit:  DefaultInsightLimit,
	}
}

type FeedbackInput struct {
	Text      string `json:"text" validate:"required"`
	Sentiment string `json:"sentiment" validate:"required,oneof=positive negative neutral"`
	Source    string `json:"source" validate:"required"`
	Region    string `json:"region" validate:"required"`
}

type PriorityItemInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Impact      int    `json:"impact" validate:"min=1,max=10"`
	Effort      int    `json:"effort" validate:"min=1,max=10"`
	Category    string `json:"category" validate:"required"`
	Rank        int    `json:"rank" validate:"min=1"`
}

type AIInsightInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"required,oneof=high medium low"`
	Impact      string `json:"impact"`
}

type ChannelInput struct {
	Name         string `json:"name" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=active inactive"`
	MessageCount string `json:"messageCount" validate:"required,messagecount"`
}

type RegionalSentimentInput struct {
	Region         string   `json:"region" validate:"required"`
	SentimentScore *float64 `json:"sentimentScore" validate:"required,gte=0,lte=10"`
}

func (s *Service) RegionalSentiment(ctx context.Context) ([]models.RegionalSentiment, error) {
	return s.Repo.ListRegionalSentiment(ctx)
}

func (s *Service) UpsertRegionalSentiment(ctx context.Context, in RegionalSentimentInput) (models.RegionalSentiment, error) {
	in.Region = strings.TrimSpace(in.Region)
	if err := s.reject("regional_sentiment", in); err != nil {
		return models.RegionalSentiment{}, err
	}
	return s.Repo.UpsertRegionalSentiment(ctx, models.RegionalSentiment{
		Region:         in.Region,
		SentimentScore: *in.SentimentScore,
	})
}

func (s *Service) RecentFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	return s.Repo.ListFeedback(ctx, clampLimit(limit, s.FeedbackLimit))
}

func (s *Service) CreateFeedback(ctx context.Context, in FeedbackInput) (models.Feedback, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Source = strings.TrimSpace(in.Source)
	in.Region = strings.TrimSpace(in.Region)
	in.Sentiment = strings.ToLower(strings.TrimSpace(in.Sentiment))
	if err := s.reject("feedback", in); err != nil {
		return models.Feedback{}, err
	}
	f, err := s.Repo.CreateFeedback(ctx, models.Feedback{
		Text:      in.Text,
		Sentiment: in.Sentiment,
		Source:    in.Source,
		Region:    in.Region,
	})
	if err != nil {
		return models.Feedback{}, err
	}
	s.Logger.Debug().Str("feedback_id", f.ID).Str("sentiment", f.Sentiment).Msg("feedback created")
	return f, nil
}

func (s *Service) SentimentTrends(ctx context.Context) ([]models.SentimentTrend, error) {
	return s.Repo.ListSentimentTrends(ctx)
}

func (s *Service) PriorityItems(ctx context.Context, sortKey string) ([]models.PriorityItem, error) {
	items, err := s.Repo.ListPriorityItems(ctx)
	if err != nil {
		return nil, err
	}
	return SortPriorityItems(items, sortKey)
}

func (s *Service) Matrix(ctx context.Context) (Matrix, error) {
	items, err := s.Repo.ListPriorityItems(ctx)
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{
		Points: BuildMatrix(SortByRank(items)),
		Counts: QuadrantCounts(items),
	}, nil
}

func (s *Service) CreatePriorityItem(ctx context.Context, in PriorityItemInput) (models.PriorityItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if err := s.reject("priority_item", in); err != nil {
		return models.PriorityItem{}, err
	}
	return s.Repo.CreatePriorityItem(ctx, models.PriorityItem{
		Title:       in.Title,
		Description: in.Description,
		Impact:      in.Impact,
		Effort:      in.Effort,
		Category:    in.Category,
		Rank:        in.Rank,
	})
}

func (s *Service) Insights(ctx context.Context, limit int) ([]models.AIInsight, error) {
	return s.Repo.ListAIInsights(ctx, clampLimit(limit, s.InsightLimit))
}

func (s *Service) CreateAIInsight(ctx context.Context, in AIInsightInput) (models.AIInsight, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Priority = strings.ToLower(strings.TrimSpace(in.Priority))
	if err := s.reject("ai_insight", in); err != nil {
		return models.AIInsight{}, err
	}
	return s.Repo.CreateAIInsight(ctx, models.AIInsight{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Impact:      in.Impact,
	})
}

// GenerateInsights runs the configured generator and stores what it returns.
// Insights stored before a failing write are kept.
func (s *Service) GenerateInsights(ctx context.Context) ([]models.AIInsight, error) {
	if s.Generator == nil {
		return nil, fmt.Errorf("no insight generator configured")
	}
	items, err := s.Repo.ListPriorityItems(ctx)
	if err != nil {
		return nil, err
	}
	regions, err := s.Repo.ListRegionalSentiment(ctx)
	if err != nil {
		return nil, err
	}
	drafts, err := s.Generator.Generate(ctx, ai.Input{
		QuickWins: quickWins(items),
		Regions:   regions,
		Average:   AverageSentiment(regions),
	})
	if err != nil {
		return nil, fmt.Errorf("generate insights: %w", err)
	}

	out := make([]models.AIInsight, 0, len(drafts))
	for _, d := range drafts {
		created, err := s.CreateAIInsight(ctx, AIInsightInput{
			Title:       d.Title,
			Description: d.Description,
			Priority:    d.Priority,
			Impact:      d.Impact,
		})
		if err != nil {
			return out, err
		}
		out = append(out, created)
	}
	s.Logger.Info().Int("count", len(out)).Str("model", s.Generator.Name()).Msg("insights generated")
	return out, nil
}

func (s *Service) ImpactMetrics(ctx context.Context) ([]models.ImpactMetric, error) {
	return s.Repo.ListImpactMetrics(ctx)
}

func (s *Service) UsageMetrics(ctx context.Context) ([]models.UsageMetric, error) {
	return s.Repo.ListUsageMetrics(ctx)
}

func (s *Service) Channels(ctx context.Context) ([]models.Channel, error) {
	return s.Repo.ListChannels(ctx)
}

func (s *Service) CreateChannel(ctx context.Context, in ChannelInput) (models.Channel, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.MessageCount = strings.TrimSpace(in.MessageCount)
	if err := s.reject("channel", in); err != nil {
		return models.Channel{}, err
	}
	return s.Repo.CreateChannel(ctx, models.Channel{
		Name:         in.Name,
		Status:       in.Status,
		MessageCount: in.MessageCount,
	})
}

func (s *Service) reject(kind string, payload any) error {
	err := s.validate(payload)
	if err != nil {
		s.Logger.Info().Str("kind", kind).Err(err).Msg("write rejected")
	}
	return err
}

func quickWins(items []models.PriorityItem) []models.PriorityItem {
	var out []models.PriorityItem
	for _, it := range SortByRank(items) {
		if ClassifyQuadrant(it.Impact, it.Effort) == QuickWins {
			out = append(out, it)
		}
	}
	return out
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return limit
}
