package models

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	ChannelActive   = "active"
	ChannelInactive = "inactive"
)

type RegionalSentiment struct {
	ID             string    `json:"id"`
	Region         string    `json:"region"`
	SentimentScore float64   `json:"sentimentScore"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Feedback struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sentiment string    `json:"sentiment"`
	Source    string    `json:"source"`
	Region    string    `json:"region"`
	Timestamp time.Time `json:"timestamp"`
}

type SentimentTrend struct {
	ID    string  `json:"id"`
	Month string  `json:"month"`
	Score float64 `json:"score"`
	Year  int     `json:"year"`
}

type PriorityItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      int    `json:"impact"`
	Effort      int    `json:"effort"`
	Category    string `json:"category"`
	Rank        int    `json:"rank"`
}

type AIInsight struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Impact      string    `json:"impact"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ImpactMetric keeps before/after values as display strings; they are never parsed.
type ImpactMetric struct {
	ID          string  `json:"id"`
	MetricName  string  `json:"metricName"`
	BeforeValue string  `json:"beforeValue"`
	AfterValue  string  `json:"afterValue"`
	Improvement int     `json:"improvement"`
	Unit        *string `json:"unit"`
}

type UsageMetric struct {
	ID                string  `json:"id"`
	Week              string  `json:"week"`
	DailyActiveUsers  int     `json:"dailyActiveUsers"`
	SatisfactionScore float64 `json:"satisfactionScore"`
}

type Channel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	MessageCount string `json:"messageCount"`
}
