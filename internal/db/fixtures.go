package db

import (
	"time"

	"github.com/sentiment_dashboard/backend/internal/models"
)

// Fixtures is the demo data set loaded by `seed` and by the in-memory store.
type Fixtures struct {
	Regions       []models.RegionalSentiment
	Feedback      []models.Feedback
	Trends        []models.SentimentTrend
	PriorityItems []models.PriorityItem
	Insights      []models.AIInsight
	ImpactMetrics []models.ImpactMetric
	UsageMetrics  []models.UsageMetric
	Channels      []models.Channel
}

func DefaultFixtures(now time.Time) Fixtures {
	now = now.UTC()
	minutesAgo := func(m int) time.Time { return now.Add(-time.Duration(m) * time.Minute) }
	unit := func(s string) *string { return &s }

	return Fixtures{
		Regions: []models.RegionalSentiment{
			{Region: "North America", SentimentScore: 7.8, UpdatedAt: now},
			{Region: "Europe", SentimentScore: 7.2, UpdatedAt: now},
			{Region: "Asia Pacific", SentimentScore: 6.9, UpdatedAt: now},
			{Region: "Latin America", SentimentScore: 6.4, UpdatedAt: now},
			{Region: "Middle East & Africa", SentimentScore: 5.8, UpdatedAt: now},
		},
		Feedback: []models.Feedback{
			{Text: "The new checkout flow is so much faster, great job!", Sentiment: models.SentimentPositive, Source: "App Store", Region: "North America", Timestamp: minutesAgo(5)},
			{Text: "Support took three days to answer my refund request.", Sentiment: models.SentimentNegative, Source: "Email", Region: "Europe", Timestamp: minutesAgo(18)},
			{Text: "Delivery arrived on time, packaging could be better.", Sentiment: models.SentimentNeutral, Source: "Survey", Region: "Asia Pacific", Timestamp: minutesAgo(42)},
			{Text: "Love the dark mode in the latest update.", Sentiment: models.SentimentPositive, Source: "Twitter", Region: "Europe", Timestamp: minutesAgo(65)},
			{Text: "The app keeps logging me out on Android.", Sentiment: models.SentimentNegative, Source: "Google Play", Region: "Latin America", Timestamp: minutesAgo(90)},
			{Text: "Pricing page is confusing, not sure which plan I need.", Sentiment: models.SentimentNeutral, Source: "Live Chat", Region: "Middle East & Africa", Timestamp: minutesAgo(130)},
		},
		Trends: []models.SentimentTrend{
			{Month: "Jan", Score: 6.5, Year: 2024},
			{Month: "Feb", Score: 6.7, Year: 2024},
			{Month: "Mar", Score: 6.6, Year: 2024},
			{Month: "Apr", Score: 7.0, Year: 2024},
			{Month: "May", Score: 7.1, Year: 2024},
			{Month: "Jun", Score: 7.3, Year: 2024},
		},
		PriorityItems: []models.PriorityItem{
			{Title: "Faster refund processing", Description: "Automate refund approval for orders under a threshold", Impact: 9, Effort: 3, Category: "Support", Rank: 1},
			{Title: "Android session stability", Description: "Fix token refresh causing forced logouts", Impact: 8, Effort: 4, Category: "Product", Rank: 2},
			{Title: "Pricing page redesign", Description: "Clarify plan differences and add a comparison table", Impact: 7, Effort: 7, Category: "Marketing", Rank: 3},
			{Title: "Packaging refresh", Description: "Switch to recyclable, sturdier packaging", Impact: 4, Effort: 8, Category: "Operations", Rank: 4},
			{Title: "Chat greeting copy", Description: "Rewrite the automated chat greeting", Impact: 3, Effort: 2, Category: "Support", Rank: 5},
		},
		Insights: []models.AIInsight{
			{Title: "Refund delays drive negative sentiment", Description: "Negative feedback mentioning refunds doubled this month.", Priority: models.PriorityHigh, Impact: "Could lift sentiment by 0.4 points", CreatedAt: minutesAgo(30)},
			{Title: "Dark mode is a hit", Description: "Positive mentions of dark mode are concentrated in Europe.", Priority: models.PriorityLow, Impact: "Highlight in release notes", CreatedAt: minutesAgo(240)},
		},
		ImpactMetrics: []models.ImpactMetric{
			{MetricName: "Average response time", BeforeValue: "24h", AfterValue: "6h", Improvement: 75, Unit: unit("hours")},
			{MetricName: "Customer satisfaction", BeforeValue: "6.2", AfterValue: "7.4", Improvement: 19},
			{MetricName: "Churn rate", BeforeValue: "5.1%", AfterValue: "4.3%", Improvement: -16, Unit: unit("%")},
		},
		UsageMetrics: []models.UsageMetric{
			{Week: "Week 1", DailyActiveUsers: 1200, SatisfactionScore: 7.1},
			{Week: "Week 2", DailyActiveUsers: 1350, SatisfactionScore: 7.3},
			{Week: "Week 3", DailyActiveUsers: 1420, SatisfactionScore: 7.2},
			{Week: "Week 4", DailyActiveUsers: 1580, SatisfactionScore: 7.6},
		},
		Channels: []models.Channel{
			{Name: "Email", Status: models.ChannelActive, MessageCount: "12.4K"},
			{Name: "Twitter", Status: models.ChannelActive, MessageCount: "8.1K"},
			{Name: "Live Chat", Status: models.ChannelActive, MessageCount: "5.6K"},
			{Name: "App Store", Status: models.ChannelActive, MessageCount: "3.2K"},
			{Name: "Facebook", Status: models.ChannelInactive, MessageCount: "950"},
		},
	}
}
