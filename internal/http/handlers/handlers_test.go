package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sentiment_dashboard/backend/internal/ai"
	"github.com/sentiment_dashboard/backend/internal/db"
	"github.com/sentiment_dashboard/backend/internal/models"
	"github.com/sentiment_dashboard/backend/internal/service"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, seed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := db.NewMemory()
	if seed {
		if err := mem.Seed(context.Background(), db.DefaultFixtures(time.Now())); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	h := &Handler{
		Service: service.New(mem, ai.MockGenerator{}, zerolog.Nop()),
		Logger:  zerolog.Nop(),
	}

	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.GET("/api/regional-sentiment", h.RegionalSentimentList)
	r.PUT("/api/regional-sentiment", h.RegionalSentimentUpsert)
	r.GET("/api/feedback", h.FeedbackList)
	r.POST("/api/feedback", h.FeedbackCreate)
	r.GET("/api/priority-items", h.PriorityItemsList)
	r.GET("/api/priority-items/matrix", h.PriorityMatrix)
	r.GET("/api/channels", h.ChannelsList)
	r.POST("/api/channels", h.ChannelCreate)
	r.POST("/api/ai-insights/generate", h.InsightsGenerate)
	r.GET("/api/dashboard/summary", h.DashboardSummary)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthzMemory(t *testing.T) {
	r := newTestRouter(t, false)
	w := do(r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCreateFeedbackInvalidSentimentNotStored(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(r, http.MethodPost, "/api/feedback", map[string]string{
		"text": "not sure", "sentiment": "maybe", "source": "web", "region": "Europe",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "VALIDATION_ERROR" || body.Error.Message != "sentiment must be one of: positive, negative, neutral" {
		t.Fatalf("unexpected error body: %+v", body)
	}

	w = do(r, http.MethodGet, "/api/feedback", nil)
	var rows []models.Feedback
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no stored feedback, got %+v", rows)
	}
}

func TestUpsertRegionalSentimentMissingScore(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(r, http.MethodPut, "/api/regional-sentiment", map[string]any{"region": "Europe"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var body errorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error.Code != "VALIDATION_ERROR" || body.Error.Message != "sentimentScore is required" {
		t.Fatalf("unexpected error body: %+v", body)
	}

	w = do(r, http.MethodGet, "/api/regional-sentiment", nil)
	var regions []models.RegionalSentiment
	if err := json.Unmarshal(w.Body.Bytes(), &regions); err != nil {
		t.Fatalf("decode regions: %v", err)
	}
	for _, reg := range regions {
		if reg.Region == "Europe" && reg.SentimentScore != 7.2 {
			t.Fatalf("Europe score overwritten: %v", reg.SentimentScore)
		}
	}
}

func TestCreateFeedbackAndList(t *testing.T) {
	r := newTestRouter(t, false)
	w := do(r, http.MethodPost, "/api/feedback", map[string]string{
		"text": "love it", "sentiment": "positive", "source": "web", "region": "Europe",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Feedback
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = do(r, http.MethodGet, "/api/feedback?limit=5", nil)
	var rows []models.Feedback
	_ = json.Unmarshal(w.Body.Bytes(), &rows)
	if len(rows) != 1 || rows[0].ID != created.ID {
		t.Fatalf("expected created feedback in list, got %+v", rows)
	}
}

func TestFeedbackListRejectsBadLimit(t *testing.T) {
	r := newTestRouter(t, false)
	w := do(r, http.MethodGet, "/api/feedback?limit=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestMalformedJSON(t *testing.T) {
	r := newTestRouter(t, false)
	req, _ := http.NewRequest(http.MethodPost, "/api/feedback", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body errorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error.Code != "INVALID_REQUEST" {
		t.Fatalf("expected INVALID_REQUEST, got %+v", body)
	}
}

func TestCreateChannelValidation(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(r, http.MethodPost, "/api/channels", map[string]string{"name": "Email", "status": "active", "messageCount": "10KM"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/channels", map[string]string{"name": "Email", "status": "active", "messageCount": "2.5K"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created ChannelView
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.Icon != "mail" {
		t.Fatalf("expected mail icon, got %q", created.Icon)
	}

	w = do(r, http.MethodGet, "/api/channels", nil)
	var list []ChannelView
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("expected only the valid channel, got %+v", list)
	}
}

func TestPriorityItemsSortParam(t *testing.T) {
	r := newTestRouter(t, true)

	w := do(r, http.MethodGet, "/api/priority-items?sort=effort", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var items []models.PriorityItem
	_ = json.Unmarshal(w.Body.Bytes(), &items)
	for i := 1; i < len(items); i++ {
		if items[i-1].Effort > items[i].Effort {
			t.Fatalf("items not sorted by effort: %+v", items)
		}
	}

	w = do(r, http.MethodGet, "/api/priority-items?sort=color", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sort, got %d", w.Code)
	}
}

func TestPriorityMatrix(t *testing.T) {
	r := newTestRouter(t, true)
	w := do(r, http.MethodGet, "/api/priority-items/matrix", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var matrix service.Matrix
	if err := json.Unmarshal(w.Body.Bytes(), &matrix); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(matrix.Points) != 5 || matrix.Points[0].Position.X != 30 || matrix.Points[0].Position.Y != 10 {
		t.Fatalf("unexpected matrix: %+v", matrix.Points)
	}
}

func TestGenerateInsights(t *testing.T) {
	r := newTestRouter(t, true)
	w := do(r, http.MethodPost, "/api/ai-insights/generate", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var items []models.AIInsight
	_ = json.Unmarshal(w.Body.Bytes(), &items)
	if len(items) == 0 || items[0].ID == "" {
		t.Fatalf("expected stored insights, got %+v", items)
	}
}

func TestDashboardSummary(t *testing.T) {
	r := newTestRouter(t, true)
	w := do(r, http.MethodGet, "/api/dashboard/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["avgSentiment"] != "6.8" || raw["totalFeedback"] != "6" {
		t.Fatalf("unexpected summary: %v", raw)
	}
	if v, ok := raw["responseRate"]; !ok || v != nil {
		t.Fatalf("responseRate must be present and null, got %v", v)
	}
}

func TestChannelIcon(t *testing.T) {
	if ChannelIcon(" Live Chat ") != "message-circle" {
		t.Fatalf("expected live chat icon")
	}
	if ChannelIcon("Carrier pigeon") != defaultChannelIcon {
		t.Fatalf("expected default icon")
	}
}
