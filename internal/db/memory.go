package db

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentiment_dashboard/backend/internal/models"
)

// Memory is a process-local store used when no database is configured and in
// tests. Every method is safe for concurrent use.
type Memory struct {
	mu  sync.RWMutex
	now func() time.Time

	regions  []models.RegionalSentiment
	feedback []models.Feedback
	trends   []models.SentimentTrend
	items    []models.PriorityItem
	insights []models.AIInsight
	impact   []models.ImpactMetric
	usage    []models.UsageMetric
	channels []models.Channel
}

func NewMemory() *Memory {
	return &Memory{now: func() time.Time { return time.Now().UTC() }}
}

func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Seed replaces all contents with the fixtures, assigning ids.
func (m *Memory) Seed(ctx context.Context, f Fixtures) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.regions = withIDs(f.Regions, func(r *models.RegionalSentiment, id string) { r.ID = id })
	m.feedback = withIDs(f.Feedback, func(r *models.Feedback, id string) { r.ID = id })
	m.trends = withIDs(f.Trends, func(r *models.SentimentTrend, id string) { r.ID = id })
	m.items = withIDs(f.PriorityItems, func(r *models.PriorityItem, id string) { r.ID = id })
	m.insights = withIDs(f.Insights, func(r *models.AIInsight, id string) { r.ID = id })
	m.impact = withIDs(f.ImpactMetrics, func(r *models.ImpactMetric, id string) { r.ID = id })
	m.usage = withIDs(f.UsageMetrics, func(r *models.UsageMetric, id string) { r.ID = id })
	m.channels = withIDs(f.Channels, func(r *models.Channel, id string) { r.ID = id })
	return nil
}

func (m *Memory) ListRegionalSentiment(ctx context.Context) ([]models.RegionalSentiment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := cloneOrEmpty(m.regions)
	slices.SortStableFunc(out, func(a, b models.RegionalSentiment) int {
		return strings.Compare(a.Region, b.Region)
	})
	return out, nil
}

func (m *Memory) UpsertRegionalSentiment(ctx context.Context, r models.RegionalSentiment) (models.RegionalSentiment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.UpdatedAt = m.now()
	for i := range m.regions {
		if m.regions[i].Region == r.Region {
			r.ID = m.regions[i].ID
			m.regions[i] = r
			return r, nil
		}
	}
	r.ID = uuid.NewString()
	m.regions = append(m.regions, r)
	return r, nil
}

// ListFeedback returns the newest entries first; for equal timestamps the
// later insert wins.
func (m *Memory) ListFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := cloneOrEmpty(m.feedback)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.Feedback) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return truncate(out, limit), nil
}

func (m *Memory) CountFeedback(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.feedback), nil
}

func (m *Memory) CreateFeedback(ctx context.Context, f models.Feedback) (models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = uuid.NewString()
	f.Timestamp = m.now()
	m.feedback = append(m.feedback, f)
	return f, nil
}

func (m *Memory) ListSentimentTrends(ctx context.Context) ([]models.SentimentTrend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := cloneOrEmpty(m.trends)
	slices.SortStableFunc(out, func(a, b models.SentimentTrend) int { return a.Year - b.Year })
	return out, nil
}

func (m *Memory) ListPriorityItems(ctx context.Context) ([]models.PriorityItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.items), nil
}

func (m *Memory) CreatePriorityItem(ctx context.Context, p models.PriorityItem) (models.PriorityItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	m.items = append(m.items, p)
	return p, nil
}

func (m *Memory) ListAIInsights(ctx context.Context, limit int) ([]models.AIInsight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := cloneOrEmpty(m.insights)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.AIInsight) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return truncate(out, limit), nil
}

func (m *Memory) CreateAIInsight(ctx context.Context, i models.AIInsight) (models.AIInsight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i.ID = uuid.NewString()
	i.CreatedAt = m.now()
	m.insights = append(m.insights, i)
	return i, nil
}

func (m *Memory) ListImpactMetrics(ctx context.Context) ([]models.ImpactMetric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.impact), nil
}

func (m *Memory) ListUsageMetrics(ctx context.Context) ([]models.UsageMetric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.usage), nil
}

func (m *Memory) ListChannels(ctx context.Context) ([]models.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.channels), nil
}

func (m *Memory) CreateChannel(ctx context.Context, c models.Channel) (models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	m.channels = append(m.channels, c)
	return c, nil
}

func withIDs[T any](in []T, setID func(*T, string)) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := range out {
		setID(&out[i], uuid.NewString())
	}
	return out
}

func cloneOrEmpty[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func truncate[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
