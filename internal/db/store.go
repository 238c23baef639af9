package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sentiment_dashboard/backend/internal/models"
)

//go:embed schema.sql
var schema string

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// Migrate creates any missing tables. It is safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) ListRegionalSentiment(ctx context.Context) ([]models.RegionalSentiment, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id::text, region, sentiment_score, updated_at FROM regional_sentiment ORDER BY region ASC`)
	if err != nil {
		return nil, fmt.Errorf("list regional sentiment: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RegionalSentiment, error) {
		var r models.RegionalSentiment
		err := row.Scan(&r.ID, &r.Region, &r.SentimentScore, &r.UpdatedAt)
		return r, err
	})
}

func (s *Store) UpsertRegionalSentiment(ctx context.Context, r models.RegionalSentiment) (models.RegionalSentiment, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO regional_sentiment (region, sentiment_score, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (region) DO UPDATE SET
			sentiment_score = EXCLUDED.sentiment_score,
			updated_at = EXCLUDED.updated_at
		RETURNING id::text, updated_at
	`, r.Region, r.SentimentScore).Scan(&r.ID, &r.UpdatedAt)
	if err != nil {
		return models.RegionalSentiment{}, fmt.Errorf("upsert regional sentiment: %w", err)
	}
	return r, nil
}

func (s *Store) ListFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id::text, text, sentiment, source, region, "timestamp"
		FROM feedback
		ORDER BY "timestamp" DESC, seq DESC
		LIMIT $1
	`, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Feedback, error) {
		var f models.Feedback
		err := row.Scan(&f.ID, &f.Text, &f.Sentiment, &f.Source, &f.Region, &f.Timestamp)
		return f, err
	})
}

func (s *Store) CountFeedback(ctx context.Context) (int, error) {
	var n int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return n, nil
}

func (s *Store) CreateFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO feedback (text, sentiment, source, region)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, "timestamp"
	`, f.Text, f.Sentiment, f.Source, f.Region).Scan(&f.ID, &f.Timestamp)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	return f, nil
}

func (s *Store) ListSentimentTrends(ctx context.Context) ([]models.SentimentTrend, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id::text, month, score, year FROM sentiment_trends ORDER BY year ASC, seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sentiment trends: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SentimentTrend, error) {
		var t models.SentimentTrend
		err := row.Scan(&t.ID, &t.Month, &t.Score, &t.Year)
		return t, err
	})
}

func (s *Store) ListPriorityItems(ctx context.Context) ([]models.PriorityItem, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id::text, title, description, impact, effort, category, rank
		FROM priority_items
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list priority items: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PriorityItem, error) {
		var p models.PriorityItem
		err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Impact, &p.Effort, &p.Category, &p.Rank)
		return p, err
	})
}

func (s *Store) CreatePriorityItem(ctx context.Context, p models.PriorityItem) (models.PriorityItem, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO priority_items (title, description, impact, effort, category, rank)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, p.Title, p.Description, p.Impact, p.Effort, p.Category, p.Rank).Scan(&p.ID)
	if err != nil {
		return models.PriorityItem{}, fmt.Errorf("create priority item: %w", err)
	}
	return p, nil
}

func (s *Store) ListAIInsights(ctx context.Context, limit int) ([]models.AIInsight, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id::text, title, description, priority, impact, created_at
		FROM ai_insights
		ORDER BY created_at DESC, seq DESC
		LIMIT $1
	`, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list ai insights: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AIInsight, error) {
		var i models.AIInsight
		err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Priority, &i.Impact, &i.CreatedAt)
		return i, err
	})
}

func (s *Store) CreateAIInsight(ctx context.Context, i models.AIInsight) (models.AIInsight, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO ai_insights (title, description, priority, impact)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, created_at
	`, i.Title, i.Description, i.Priority, i.Impact).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		return models.AIInsight{}, fmt.Errorf("create ai insight: %w", err)
	}
	return i, nil
}

func (s *Store) ListImpactMetrics(ctx context.Context) ([]models.ImpactMetric, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id::text, metric_name, before_value, after_value, improvement, unit
		FROM impact_metrics
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list impact metrics: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ImpactMetric, error) {
		var m models.ImpactMetric
		err := row.Scan(&m.ID, &m.MetricName, &m.BeforeValue, &m.AfterValue, &m.Improvement, &m.Unit)
		return m, err
	})
}

func (s *Store) ListUsageMetrics(ctx context.Context) ([]models.UsageMetric, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id::text, week, daily_active_users, satisfaction_score
		FROM usage_metrics
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list usage metrics: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.UsageMetric, error) {
		var m models.UsageMetric
		err := row.Scan(&m.ID, &m.Week, &m.DailyActiveUsers, &m.SatisfactionScore)
		return m, err
	})
}

func (s *Store) ListChannels(ctx context.Context) ([]models.Channel, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id::text, name, status, message_count FROM channels ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Channel, error) {
		var c models.Channel
		err := row.Scan(&c.ID, &c.Name, &c.Status, &c.MessageCount)
		return c, err
	})
}

func (s *Store) CreateChannel(ctx context.Context, c models.Channel) (models.Channel, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO channels (name, status, message_count)
		VALUES ($1, $2, $3)
		RETURNING id::text
	`, c.Name, c.Status, c.MessageCount).Scan(&c.ID)
	if err != nil {
		return models.Channel{}, fmt.Errorf("create channel: %w", err)
	}
	return c, nil
}

// Seed replaces every table's contents with the fixtures in one transaction.
func (s *Store) Seed(ctx context.Context, f Fixtures) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `TRUNCATE regional_sentiment, feedback, sentiment_trends, priority_items, ai_insights, impact_metrics, usage_metrics, channels`)
		if err != nil {
			return fmt.Errorf("reset tables: %w", err)
		}

		copies := []struct {
			table   string
			columns []string
			rows    [][]any
		}{
			{"regional_sentiment", []string{"region", "sentiment_score", "updated_at"}, regionRows(f.Regions)},
			{"feedback", []string{"text", "sentiment", "source", "region", "timestamp"}, feedbackRows(f.Feedback)},
			{"sentiment_trends", []string{"month", "score", "year"}, trendRows(f.Trends)},
			{"priority_items", []string{"title", "description", "impact", "effort", "category", "rank"}, priorityRows(f.PriorityItems)},
			{"ai_insights", []string{"title", "description", "priority", "impact", "created_at"}, insightRows(f.Insights)},
			{"impact_metrics", []string{"metric_name", "before_value", "after_value", "improvement", "unit"}, impactRows(f.ImpactMetrics)},
			{"usage_metrics", []string{"week", "daily_active_users", "satisfaction_score"}, usageRows(f.UsageMetrics)},
			{"channels", []string{"name", "status", "message_count"}, channelRows(f.Channels)},
		}
		for _, c := range copies {
			if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
				return fmt.Errorf("seed %s: %w", c.table, err)
			}
		}
		return nil
	})
}

func regionRows(in []models.RegionalSentiment) [][]any {
	rows := make([][]any, 0, len(in))
	for _, r := range in {
		rows = append(rows, []any{r.Region, r.SentimentScore, r.UpdatedAt})
	}
	return rows
}

func feedbackRows(in []models.Feedback) [][]any {
	rows := make([][]any, 0, len(in))
	for _, f := range in {
		rows = append(rows, []any{f.Text, f.Sentiment, f.Source, f.Region, f.Timestamp})
	}
	return rows
}

func trendRows(in []models.SentimentTrend) [][]any {
	rows := make([][]any, 0, len(in))
	for _, t := range in {
		rows = append(rows, []any{t.Month, t.Score, t.Year})
	}
	return rows
}

func priorityRows(in []models.PriorityItem) [][]any {
	rows := make([][]any, 0, len(in))
	for _, p := range in {
		rows = append(rows, []any{p.Title, p.Description, p.Impact, p.Effort, p.Category, p.Rank})
	}
	return rows
}

func insightRows(in []models.AIInsight) [][]any {
	rows := make([][]any, 0, len(in))
	for _, i := range in {
		rows = append(rows, []any{i.Title, i.Description, i.Priority, i.Impact, i.CreatedAt})
	}
	return rows
}

func impactRows(in []models.ImpactMetric) [][]any {
	rows := make([][]any, 0, len(in))
	for _, m := range in {
		rows = append(rows, []any{m.MetricName, m.BeforeValue, m.AfterValue, m.Improvement, m.Unit})
	}
	return rows
}

func usageRows(in []models.UsageMetric) [][]any {
	rows := make([][]any, 0, len(in))
	for _, m := range in {
		rows = append(rows, []any{m.Week, m.DailyActiveUsers, m.SatisfactionScore})
	}
	return rows
}

func channelRows(in []models.Channel) [][]any {
	rows := make([][]any, 0, len(in))
	for _, c := range in {
		rows = append(rows, []any{c.Name, c.Status, c.MessageCount})
	}
	return rows
}

// sqlLimit maps a non-positive limit to NULL, which Postgres reads as LIMIT ALL.
func sqlLimit(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
