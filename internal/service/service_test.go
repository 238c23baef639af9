package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sentiment_dashboard/backend/internal/ai"
	"github.com/sentiment_dashboard/backend/internal/db"
	"github.com/sentiment_dashboard/backend/internal/models"
)

func newTestService(t *testing.T, seed bool) (*Service, *db.Memory) {
	t.Helper()
	mem := db.NewMemory()
	if seed {
		if err := mem.Seed(context.Background(), db.DefaultFixtures(time.Now())); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return New(mem, ai.MockGenerator{ModelVersion: "mock-test"}, zerolog.Nop()), mem
}

func TestCreateFeedbackRejectsUnknownSentiment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	_, err := svc.CreateFeedback(ctx, FeedbackInput{Text: "hmm", Sentiment: "maybe", Source: "web", Region: "Europe"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "sentiment" {
		t.Fatalf("expected sentiment validation error, got %v", err)
	}

	rows, err := svc.RecentFeedback(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rejected feedback must not be stored, got %+v", rows)
	}
}

func TestCreateFeedbackNormalizesSentiment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	f, err := svc.CreateFeedback(ctx, FeedbackInput{Text: "great", Sentiment: " Positive ", Source: "web", Region: "Europe"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.Sentiment != models.SentimentPositive || f.ID == "" || f.Timestamp.IsZero() {
		t.Fatalf("unexpected feedback: %+v", f)
	}
	rows, _ := svc.RecentFeedback(ctx, 0)
	if len(rows) != 1 || rows[0].ID != f.ID {
		t.Fatalf("expected created feedback in list, got %+v", rows)
	}
}

func TestRecentFeedbackDefaultLimit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)
	for i := 0; i < 15; i++ {
		if _, err := svc.CreateFeedback(ctx, FeedbackInput{Text: "x", Sentiment: "neutral", Source: "web", Region: "Europe"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	rows, _ := svc.RecentFeedback(ctx, 0)
	if len(rows) != DefaultFeedbackLimit {
		t.Fatalf("expected %d rows, got %d", DefaultFeedbackLimit, len(rows))
	}
	rows, _ = svc.RecentFeedback(ctx, 3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}

func TestCreatePriorityItemBounds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	_, err := svc.CreatePriorityItem(ctx, PriorityItemInput{Title: "t", Category: "c", Impact: 11, Effort: 3, Rank: 1})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "impact" || ve.Reason != "impact must be at most 10" {
		t.Fatalf("expected impact bound error, got %v", err)
	}
	_, err = svc.CreatePriorityItem(ctx, PriorityItemInput{Title: "t", Category: "c", Impact: 5, Effort: 3, Rank: 0})
	if !errors.As(err, &ve) || ve.Field != "rank" {
		t.Fatalf("expected rank error, got %v", err)
	}
	items, _ := svc.PriorityItems(ctx, "")
	if len(items) != 0 {
		t.Fatalf("rejected items must not be stored")
	}
}

func TestPriorityItemsSortedWithoutTouchingStore(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t, false)
	for _, r := range []int{3, 1, 2} {
		if _, err := svc.CreatePriorityItem(ctx, PriorityItemInput{Title: "t", Category: "c", Impact: 5, Effort: 5, Rank: r}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	sorted, err := svc.PriorityItems(ctx, SortRank)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ranks []int
	for _, it := range sorted {
		ranks = append(ranks, it.Rank)
	}
	if !slices.Equal(ranks, []int{1, 2, 3}) {
		t.Fatalf("unexpected ranks: %v", ranks)
	}
	stored, _ := mem.ListPriorityItems(ctx)
	if stored[0].Rank != 3 {
		t.Fatalf("store order changed: %+v", stored)
	}
}

func TestCreateChannelValidatesMessageCount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	if _, err := svc.CreateChannel(ctx, ChannelInput{Name: "Email", Status: "active", MessageCount: "1e3"}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	c, err := svc.CreateChannel(ctx, ChannelInput{Name: "Email", Status: "Active", MessageCount: " 2.5K "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.MessageCount != "2.5K" || c.Status != models.ChannelActive {
		t.Fatalf("unexpected channel: %+v", c)
	}
	channels, _ := svc.Channels(ctx)
	if len(channels) != 1 {
		t.Fatalf("expected one channel, got %d", len(channels))
	}
}

func TestCreateAIInsightRejectsPriority(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)
	_, err := svc.CreateAIInsight(ctx, AIInsightInput{Title: "t", Description: "d", Priority: "urgent"})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpsertRegionalSentimentRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)
	if _, err := svc.UpsertRegionalSentiment(ctx, RegionalSentimentInput{Region: "Europe", SentimentScore: score(10.5)}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	r, err := svc.UpsertRegionalSentiment(ctx, RegionalSentimentInput{Region: " Europe ", SentimentScore: score(7.5)})
	if err != nil || r.Region != "Europe" {
		t.Fatalf("unexpected upsert result: %+v (%v)", r, err)
	}
}

func TestUpsertRegionalSentimentRequiresScore(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t, true)
	before := regionScore(t, mem, "Europe")

	_, err := svc.UpsertRegionalSentiment(ctx, RegionalSentimentInput{Region: "Europe"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "sentimentScore" || ve.Reason != "sentimentScore is required" {
		t.Fatalf("expected sentimentScore required error, got %v", err)
	}
	if after := regionScore(t, mem, "Europe"); after != before {
		t.Fatalf("stored score changed from %v to %v", before, after)
	}

	r, err := svc.UpsertRegionalSentiment(ctx, RegionalSentimentInput{Region: "Europe", SentimentScore: score(0)})
	if err != nil || r.SentimentScore != 0 {
		t.Fatalf("explicit zero must be accepted: %+v (%v)", r, err)
	}
}

func TestCreateFeedbackRejectsBlankFields(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t, false)
	cases := []struct {
		field string
		in    FeedbackInput
	}{
		{"text", FeedbackInput{Text: "   ", Sentiment: "positive", Source: "web", Region: "Europe"}},
		{"source", FeedbackInput{Text: "ok", Sentiment: "positive", Source: "\t", Region: "Europe"}},
		{"region", FeedbackInput{Text: "ok", Sentiment: "positive", Source: "web", Region: " "}},
	}
	for _, tc := range cases {
		_, err := svc.CreateFeedback(ctx, tc.in)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("%s: expected validation error, got %v", tc.field, err)
		}
	}
	if n, _ := mem.CountFeedback(ctx); n != 0 {
		t.Fatalf("expected nothing stored, got %d", n)
	}

	f, err := svc.CreateFeedback(ctx, FeedbackInput{Text: " fast reply ", Sentiment: "positive", Source: " web ", Region: " Europe "})
	if err != nil || f.Text != "fast reply" || f.Source != "web" || f.Region != "Europe" {
		t.Fatalf("expected trimmed feedback, got %+v (%v)", f, err)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	empty, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if empty.AvgSentiment != "0.0" || empty.TotalFeedback != "0" {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
	if len(empty.NotComputed) != 6 || empty.ResponseRate != nil || empty.ActiveUsersChange != nil {
		t.Fatalf("placeholders must stay null: %+v", empty)
	}

	_, _ = svc.UpsertRegionalSentiment(ctx, RegionalSentimentInput{Region: "A", SentimentScore: score(6)})
	_, _ = svc.UpsertRegionalSentiment(ctx, RegionalSentimentInput{Region: "B", SentimentScore: score(8)})
	got, _ := svc.Summary(ctx)
	if got.AvgSentiment != "7.0" {
		t.Fatalf("expected 7.0, got %s", got.AvgSentiment)
	}
}

func TestMatrixFromSeed(t *testing.T) {
	svc, _ := newTestService(t, true)
	matrix, err := svc.Matrix(context.Background())
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	points := matrix.Points
	if len(points) == 0 || points[0].Item.Rank != 1 || points[0].Quadrant != QuickWins {
		t.Fatalf("unexpected matrix: %+v", points)
	}
	if matrix.Counts[QuickWins] != 2 || matrix.Counts[FillIns] != 1 {
		t.Fatalf("unexpected counts: %+v", matrix.Counts)
	}
}

func TestGenerateInsightsStoresDrafts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, true)
	before, _ := svc.Insights(ctx, MaxListLimit)

	created, err := svc.GenerateInsights(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(created) == 0 {
		t.Fatalf("expected generated insights")
	}
	after, _ := svc.Insights(ctx, MaxListLimit)
	if len(after) != len(before)+len(created) {
		t.Fatalf("expected %d insights, got %d", len(before)+len(created), len(after))
	}
}

type failingRepo struct {
	*db.Memory
}

var errStorage = errors.New("connection refused")

func (failingRepo) CreateFeedback(context.Context, models.Feedback) (models.Feedback, error) {
	return models.Feedback{}, errStorage
}

func TestStorageErrorsPropagate(t *testing.T) {
	svc := New(failingRepo{db.NewMemory()}, nil, zerolog.Nop())
	_, err := svc.CreateFeedback(context.Background(), FeedbackInput{Text: "x", Sentiment: "neutral", Source: "web", Region: "Europe"})
	if !errors.Is(err, errStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if IsValidationError(err) {
		t.Fatalf("storage error must not look like a validation error")
	}
	if _, err := svc.GenerateInsights(context.Background()); err == nil {
		t.Fatalf("expected error without a generator")
	}
}

func score(v float64) *float64 { return &v }

func regionScore(t *testing.T, mem *db.Memory, region string) float64 {
	t.Helper()
	regions, err := mem.ListRegionalSentiment(context.Background())
	if err != nil {
		t.Fatalf("list regions: %v", err)
	}
	for _, r := range regions {
		if r.Region == region {
			return r.SentimentScore
		}
	}
	t.Fatalf("region %q not found", region)
	return 0
}
